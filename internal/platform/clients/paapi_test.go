package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"associates/internal/engine/paapi"
	"associates/internal/platform/config"
)

func TestResolver_Defaults(t *testing.T) {
	profileCreds := func(ctx context.Context, profile, partnerTag string) (paapi.Credentials, error) {
		return paapi.Credentials{AccessKey: "AKIDPROFILE", SecretKey: "profile-secret", PartnerTag: partnerTag}, nil
	}

	tests := []struct {
		name       string
		cfg        config.PAAPIConfig
		partnerTag string
		wantKey    string
		wantTag    string
		wantErr    error
	}{
		{
			name:    "Static keys",
			cfg:     config.PAAPIConfig{AccessKey: "AKIDSTATIC", SecretKey: "s", PartnerTag: "cfg-20", Profile: "dev"},
			wantKey: "AKIDSTATIC",
			wantTag: "cfg-20",
		},
		{
			name:       "Tag override",
			cfg:        config.PAAPIConfig{AccessKey: "AKIDSTATIC", SecretKey: "s", PartnerTag: "cfg-20"},
			partnerTag: "req-20",
			wantKey:    "AKIDSTATIC",
			wantTag:    "req-20",
		},
		{
			name:    "Profile",
			cfg:     config.PAAPIConfig{PartnerTag: "cfg-20", Profile: "dev"},
			wantKey: "AKIDPROFILE",
			wantTag: "cfg-20",
		},
		{
			name:    "Missing tag",
			cfg:     config.PAAPIConfig{AccessKey: "AKIDSTATIC", SecretKey: "s"},
			wantErr: paapi.ErrMissingCredentials,
		},
		{
			name:    "Nothing configured",
			cfg:     config.PAAPIConfig{PartnerTag: "cfg-20"},
			wantErr: paapi.ErrMissingCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := NewResolver(tt.cfg).WithProfileLoader(profileCreds).Defaults(context.Background(), tt.partnerTag)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Defaults() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Defaults() error = %v", err)
			}
			if creds.AccessKey != tt.wantKey || creds.PartnerTag != tt.wantTag {
				t.Errorf("Defaults() = %v", creds)
			}
		})
	}
}

func TestNewDefaultClient(t *testing.T) {
	cfg := config.PAAPIConfig{
		Marketplace: "www.amazon.fr",
		Timeout:     5 * time.Second,
		AccessKey:   "AKIDSTATIC",
		SecretKey:   "s",
		PartnerTag:  "cfg-20",
	}

	client, err := NewDefaultClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewDefaultClient() error = %v", err)
	}
	if client.Marketplace().Host != "webservices.amazon.fr" {
		t.Errorf("Host = %s", client.Marketplace().Host)
	}

	if _, err := NewDefaultClient(context.Background(), config.PAAPIConfig{}); !errors.Is(err, paapi.ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}
