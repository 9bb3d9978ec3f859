package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	Event       EventConfig
	Sheets      SheetsConfig
	Admin       AdminConfig
	DB          DBConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Idempotency IdempotencyConfig
	CORS        CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.App.StoreDriver {
	case StoreDriverSheets:
		if strings.TrimSpace(c.Sheets.SpreadsheetID) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvSpreadsheetID, EnvStoreDriver, StoreDriverSheets)
		}
		if !c.Sheets.HasCredentials() {
			return fmt.Errorf("google sheets credentials missing: set %s, %s, or %s and %s",
				EnvGoogleCredentialsJSON, EnvGoogleApplicationCredentials, EnvSheetsClientEmail, EnvSheetsPrivateKey)
		}
	case StoreDriverSQL:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStoreDriver, StoreDriverSQL)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreDriver, c.App.StoreDriver)
	}
	if _, err := time.LoadLocation(c.Event.Timezone); err != nil {
		return fmt.Errorf("invalid %s %q: %w", EnvEventTimezone, c.Event.Timezone, err)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"INVITACION_APP_ENV" default:"dev"`
	Port         string `envconfig:"INVITACION_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"INVITACION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVITACION_LOG_WARN_STACK" default:"false"`
	StoreDriver  string `envconfig:"INVITACION_STORE_DRIVER" default:"sheets"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type EventConfig struct {
	Timezone string `envconfig:"INVITACION_EVENT_TIMEZONE" default:"America/Bogota"`
}

// Location resolves the event timezone. Load has already validated it.
func (e EventConfig) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SheetsConfig accepts the unprefixed GOOGLE_SHEETS_* names the site already uses.
type SheetsConfig struct {
	SpreadsheetID          string        `envconfig:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	ClientEmail            string        `envconfig:"GOOGLE_SHEETS_CLIENT_EMAIL"`
	PrivateKey             string        `envconfig:"GOOGLE_SHEETS_PRIVATE_KEY"`
	CredentialsJSON        string        `envconfig:"INVITACION_GOOGLE_CREDENTIALS_JSON"`
	ApplicationCredentials string        `envconfig:"INVITACION_GOOGLE_APPLICATION_CREDENTIALS"`
	PingTimeout            time.Duration `envconfig:"INVITACION_SHEETS_PING_TIMEOUT" default:"5s"`
}

func (s SheetsConfig) HasCredentials() bool {
	if strings.TrimSpace(s.CredentialsJSON) != "" || strings.TrimSpace(s.ApplicationCredentials) != "" {
		return true
	}
	return strings.TrimSpace(s.ClientEmail) != "" && strings.TrimSpace(s.PrivateKey) != ""
}

// NormalizedPrivateKey turns literal "\n" sequences from .env files into newlines.
func (s SheetsConfig) NormalizedPrivateKey() string {
	return strings.ReplaceAll(s.PrivateKey, `\n`, "\n")
}

type AdminConfig struct {
	Password string `envconfig:"ADMIN_PASSWORD"`
}

type DBConfig struct {
	Driver          string        `envconfig:"INVITACION_DB_DRIVER" default:"sqlite"`
	DSN             string        `envconfig:"INVITACION_DB_DSN" default:"file:invitacion.db?_busy_timeout=5000"`
	MaxOpenConns    int           `envconfig:"INVITACION_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"INVITACION_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"INVITACION_DB_CONN_MAX_LIFETIME" default:"1h"`
}

// RedisConfig is optional; without a URL or address rate limiting and
// idempotent replays are disabled.
type RedisConfig struct {
	URL          string        `envconfig:"INVITACION_REDIS_URL"`
	Address      string        `envconfig:"INVITACION_REDIS_ADDR"`
	Password     string        `envconfig:"INVITACION_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVITACION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVITACION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVITACION_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"INVITACION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVITACION_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"INVITACION_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"INVITACION_RATE_LIMIT_WINDOW" default:"1m"`
	WriteLimit int           `envconfig:"INVITACION_RATE_LIMIT_WRITE_LIMIT" default:"20"`
	AdminLimit int           `envconfig:"INVITACION_RATE_LIMIT_ADMIN_LIMIT" default:"10"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"INVITACION_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INVITACION_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
