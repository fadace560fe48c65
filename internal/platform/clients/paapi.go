// Package clients builds marketplace clients from the loaded configuration.
package clients

import (
	"context"
	"net/http"

	"associates/internal/engine/paapi"
	"associates/internal/platform/config"
)

// ProfileLoader resolves credentials from a shared AWS profile.
type ProfileLoader func(ctx context.Context, profile, partnerTag string) (paapi.Credentials, error)

type Resolver struct {
	cfg      config.PAAPIConfig
	profiles ProfileLoader
}

func NewResolver(cfg config.PAAPIConfig) *Resolver {
	return &Resolver{cfg: cfg, profiles: paapi.CredentialsFromProfile}
}

// WithProfileLoader replaces the shared-profile lookup.
func (r *Resolver) WithProfileLoader(load ProfileLoader) *Resolver {
	r.profiles = load
	return r
}

// Defaults returns the server-side credentials: static keys first, then
// the configured profile. partnerTag overrides the configured tag when set.
func (r *Resolver) Defaults(ctx context.Context, partnerTag string) (paapi.Credentials, error) {
	if partnerTag == "" {
		partnerTag = r.cfg.PartnerTag
	}

	if r.cfg.AccessKey != "" && r.cfg.SecretKey != "" {
		creds := paapi.Credentials{AccessKey: r.cfg.AccessKey, SecretKey: r.cfg.SecretKey, PartnerTag: partnerTag}
		return creds, creds.Validate()
	}
	if r.cfg.Profile != "" {
		return r.profiles(ctx, r.cfg.Profile, partnerTag)
	}
	return paapi.Credentials{}, paapi.ErrMissingCredentials
}

// Options returns the client options implied by the configuration.
func Options(cfg config.PAAPIConfig) []paapi.Option {
	return []paapi.Option{paapi.WithHTTPClient(&http.Client{Timeout: cfg.Timeout})}
}

// NewDefaultClient builds a client for the configured marketplace using
// the server-side credentials.
func NewDefaultClient(ctx context.Context, cfg config.PAAPIConfig) (*paapi.Client, error) {
	creds, err := NewResolver(cfg).Defaults(ctx, "")
	if err != nil {
		return nil, err
	}
	return paapi.NewClient(creds, cfg.Marketplace, Options(cfg)...), nil
}
