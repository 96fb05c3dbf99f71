// Package config loads intake settings from defaults, an optional YAML file and
// INTAKE_ environment variables, in increasing order of precedence. Command flags
// bound to the same keys override all three.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (INTAKE_SERVER_ADDR, INTAKE_MAIL_API_KEY, ...).
const EnvPrefix = "INTAKE"

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Mail    MailConfig    `mapstructure:"mail"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	TTL           time.Duration `mapstructure:"ttl"`
	EncryptionKey string        `mapstructure:"encryption_key"`
	// FallbackKeys still decrypt sessions written before a key rotation.
	FallbackKeys  []string      `mapstructure:"fallback_keys"`
}

// RedisConfig holds the connection used by the redis session store and locker.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// MailConfig selects and configures the deliverer.
type MailConfig struct {
	Driver  string        `mapstructure:"driver"`
	APIKey  string        `mapstructure:"api_key"`
	From    string        `mapstructure:"from"`
	To      string        `mapstructure:"to"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Mail drivers.
const (
	MailResend = "resend"
	MailLog    = "log"
	MailMemory = "memory"
)

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.encryption_key", "")
	v.SetDefault("session.fallback_keys", []string{})
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "intake:session:")
	v.SetDefault("mail.driver", MailLog)
	v.SetDefault("mail.api_key", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.base_url", "")
	v.SetDefault("mail.timeout", 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the hosted deployment, accepted after the prefixed ones.
	_ = v.BindEnv("mail.api_key", EnvPrefix+"_MAIL_API_KEY", "RESEND_API_KEY")
	_ = v.BindEnv("mail.to", EnvPrefix+"_MAIL_TO", "NOTIFICATION_EMAIL")
	_ = v.BindEnv("mail.from", EnvPrefix+"_MAIL_FROM", "RESEND_FROM")
	return v
}

// Load reads file (when non-empty) into v and decodes the result.
// A missing file given explicitly is an error; without one only defaults, env and flags apply.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, c.Validate()
}

// FromEnv loads defaults and environment only.
func FromEnv() (Config, error) {
	return Load(New(), "")
}

// Validate checks driver names and the settings each driver requires.
func (c Config) Validate() error {
	var errs []error
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("session.store: unknown driver %q", c.Session.Store))
	}
	switch c.Mail.Driver {
	case MailLog, MailMemory:
	case MailResend:
		if strings.TrimSpace(c.Mail.APIKey) == "" {
			errs = append(errs, errors.New("mail.api_key: required by the resend driver"))
		}
		if strings.TrimSpace(c.Mail.To) == "" {
			errs = append(errs, errors.New("mail.to: required by the resend driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("mail.driver: unknown driver %q", c.Mail.Driver))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
