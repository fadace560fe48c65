package paapi

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

var ErrMissingCredentials = errors.New("access key, secret key and partner tag are required")

// Credentials identify an Associates account. They are read-only once a
// client is built and must never reach a log line.
type Credentials struct {
	AccessKey  string
	SecretKey  string
	PartnerTag string
}

func (c Credentials) Validate() error {
	if c.AccessKey == "" || c.SecretKey == "" || c.PartnerTag == "" {
		return ErrMissingCredentials
	}
	return nil
}

// String keeps credentials out of %v output.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKey: %s, PartnerTag: %s}", redact(c.AccessKey), c.PartnerTag)
}

func (c Credentials) GoString() string {
	return c.String()
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// CredentialsFromProfile resolves the access and secret key through the AWS
// shared config chain (environment, ~/.aws/credentials, SSO) for the named
// profile. An empty profile uses the default chain.
func CredentialsFromProfile(ctx context.Context, profile, partnerTag string) (Credentials, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return Credentials{}, fmt.Errorf("load aws config: %w", err)
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return Credentials{}, fmt.Errorf("retrieve credentials for profile %q: %w", profile, err)
	}

	out := Credentials{
		AccessKey:  creds.AccessKeyID,
		SecretKey:  creds.SecretAccessKey,
		PartnerTag: partnerTag,
	}
	return out, out.Validate()
}
