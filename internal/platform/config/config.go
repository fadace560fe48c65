package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	PAAPI     PAAPIConfig     `mapstructure:"paapi"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// DashboardConfig guards session creation. PasswordHash is a bcrypt hash;
// empty means the dashboard is open to anyone who holds API credentials.
type DashboardConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
}

type RateLimitConfig struct {
	APIPerMinute int `mapstructure:"api_per_minute"`
}

// PAAPIConfig holds the server-side defaults for Product Advertising API access.
// Static keys take precedence over Profile.
type PAAPIConfig struct {
	Marketplace string        `mapstructure:"marketplace"`
	Timeout     time.Duration `mapstructure:"timeout"`
	AccessKey   string        `mapstructure:"access_key"`
	SecretKey   string        `mapstructure:"secret_key"`
	PartnerTag  string        `mapstructure:"partner_tag"`
	Profile     string        `mapstructure:"profile"`
}

// HasDefaultCredentials reports whether sessions may be opened without
// supplying keys in the request.
func (c PAAPIConfig) HasDefaultCredentials() bool {
	if c.PartnerTag == "" {
		return false
	}
	return (c.AccessKey != "" && c.SecretKey != "") || c.Profile != ""
}

type TrackerConfig struct {
	Keywords  []string `mapstructure:"keywords"`
	ItemCount int      `mapstructure:"item_count"`
	OutputDir string   `mapstructure:"output_dir"`
	RunHour   int      `mapstructure:"run_hour"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("jwt.access_token_ttl", 12*time.Hour)
	v.SetDefault("dashboard.session_ttl", 12*time.Hour)
	v.SetDefault("rate_limit.api_per_minute", 60)
	v.SetDefault("paapi.marketplace", "www.amazon.com")
	v.SetDefault("paapi.timeout", 30*time.Second)
	// Registered so AutomaticEnv can see them during Unmarshal.
	for _, key := range []string{"jwt.secret", "dashboard.password_hash", "paapi.access_key", "paapi.secret_key", "paapi.partner_tag", "paapi.profile"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("tracker.item_count", 10)
	v.SetDefault("tracker.output_dir", "exports")
	v.SetDefault("tracker.run_hour", 1)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// Load reads the YAML file at path; environment variables override it
// (PAAPI_ACCESS_KEY overrides paapi.access_key). An empty path loads
// defaults plus environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return errors.New("jwt.access_token_ttl must be positive")
	}
	if c.Dashboard.SessionTTL <= 0 {
		return errors.New("dashboard.session_ttl must be positive")
	}
	if c.RateLimit.APIPerMinute < 1 {
		return errors.New("rate_limit.api_per_minute must be at least 1")
	}
	if c.PAAPI.Timeout < time.Second {
		return errors.New("paapi.timeout must be at least 1s")
	}
	if c.Tracker.ItemCount < 1 || c.Tracker.ItemCount > 10 {
		return errors.New("tracker.item_count must be between 1 and 10")
	}
	if c.Tracker.RunHour < 0 || c.Tracker.RunHour > 23 {
		return errors.New("tracker.run_hour must be between 0 and 23")
	}
	return nil
}
