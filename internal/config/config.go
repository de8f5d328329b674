package config

import (
	"fmt"
	"net/url"
	"pms/internal/core/domain/notification"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port             string `env:"PORT" envDefault:"5000"`
	Secret           string `env:"SECRET,required"`
	PostgresqlURL    string `env:"POSTGRESQL_URL,required"`
	RedisURL         string `env:"REDIS_URL,required"`
	MigrationsPath   string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	LogDevelopment   bool   `env:"LOG_DEVELOPMENT"`

	PasswordResetTokenTTL time.Duration `env:"PASSWORD_RESET_TOKEN_TTL" envDefault:"10m"`
	NotifierTimeout       time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"10s"`
	FrontendBaseURL       url.URL       `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:3000"`
	AllowedOrigins        []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5000"`

	EmailFrom    string `env:"EMAIL_FROM" envDefault:"noreply@pms.local"`
	EmailService string `env:"EMAIL_SERVICE"`
	EmailUser    string `env:"EMAIL_USER"`
	EmailPass    string `env:"EMAIL_PASS"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPSecure   bool   `env:"SMTP_SECURE"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`

	NotifierQueueURL string `env:"NOTIFIER_QUEUE_URL"`
	NotifierQueue    string `env:"NOTIFIER_QUEUE" envDefault:"pms.mail"`

	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Notifier is resolved from the EMAIL_*, SMTP_* and NOTIFIER_QUEUE_*
	// variables by Load.
	Notifier notification.Config `env:"-"`
}

func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return load(env.Options{Environment: environment})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if cfg.PasswordResetTokenTTL <= 0 {
		return nil, fmt.Errorf("PASSWORD_RESET_TOKEN_TTL must be positive, got %s", cfg.PasswordResetTokenTTL)
	}
	if cfg.NotifierTimeout <= 0 {
		return nil, fmt.Errorf("NOTIFIER_TIMEOUT must be positive, got %s", cfg.NotifierTimeout)
	}
	if cfg.FrontendBaseURL.Scheme == "" || cfg.FrontendBaseURL.Host == "" {
		return nil, fmt.Errorf("FRONTEND_BASE_URL must be an absolute URL")
	}

	notifier, err := cfg.resolveNotifier()
	if err != nil {
		return nil, err
	}
	cfg.Notifier = notifier
	return cfg, nil
}

// A named service wins over custom SMTP settings; without either, reset
// links are only logged.
func (c *Config) resolveNotifier() (notification.Config, error) {
	direct, err := c.resolveDirectNotifier()
	if err != nil {
		return nil, err
	}
	if c.NotifierQueueURL == "" {
		return direct, nil
	}
	return notification.Queue{URL: c.NotifierQueueURL, Queue: c.NotifierQueue, Direct: direct}, nil
}

func (c *Config) resolveDirectNotifier() (notification.Config, error) {
	switch {
	case c.EmailService != "":
		if !notification.IsKnownService(c.EmailService) {
			return nil, fmt.Errorf("unknown EMAIL_SERVICE %q", c.EmailService)
		}
		return notification.ProviderService{Name: c.EmailService, User: c.EmailUser, Pass: c.EmailPass}, nil
	case c.SMTPHost != "":
		return notification.CustomSMTP{
			Host:   c.SMTPHost,
			Port:   c.SMTPPort,
			Secure: c.SMTPSecure,
			User:   c.SMTPUser,
			Pass:   c.SMTPPass,
		}, nil
	default:
		return notification.DevConsole{}, nil
	}
}

// DirectNotifier is the transport that actually reaches a mailbox, unwrapping
// the queue if there is one.
func (c *Config) DirectNotifier() notification.Config {
	if q, ok := c.Notifier.(notification.Queue); ok {
		return q.Direct
	}
	return c.Notifier
}
