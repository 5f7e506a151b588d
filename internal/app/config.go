package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything the service reads from its environment. Every
// knob has a default that works for local development except the SMTP
// settings; with no SMTP host configured, codes go to the log instead.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"jotmail.db"`

	// SessionSecret signs HS256 session tokens. When empty an ephemeral
	// random secret is generated at startup, which invalidates all
	// sessions on every restart.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionIssuer string        `env:"SESSION_ISSUER" envDefault:"jotmail"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	OTPLifetime time.Duration `env:"OTP_LIFETIME" envDefault:"10m"`

	SiteName string `env:"SITE_NAME" envDefault:"Jotmail"`

	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SMTPFrom       string `env:"SMTP_FROM" envDefault:"no-reply@jotmail.local"`
	SMTPDisableTLS bool   `env:"SMTP_DISABLE_TLS" envDefault:"false"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
