package config

import (
	"time"

	"github.com/openmargin/annotations-backend/internal/auth"
)

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Annotation AnnotationConfig `yaml:"annotation"`
	Log        LogConfig        `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token issuance and assertion verification settings.
type AuthConfig struct {
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`

	// ClientsRaw registers clients allowed to exchange identity assertions,
	// as a comma-separated list of id:secret pairs.
	ClientsRaw string `yaml:"clients" env:"AUTH_CLIENTS" env-required:"true"`

	// Clients is parsed from ClientsRaw during validation.
	Clients []auth.ClientCredential `yaml:"-" env:"-"`
}

// AnnotationConfig holds annotation lifecycle settings.
type AnnotationConfig struct {
	// TrustedAuthority is the originating authority whose group members may
	// resolve suggestions.
	TrustedAuthority string `yaml:"trusted_authority" env:"ANNOTATION_TRUSTED_AUTHORITY" env-required:"true"`

	// MaxBulkDelete caps the number of ids accepted by one bulk delete call.
	MaxBulkDelete int `yaml:"max_bulk_delete" env:"ANNOTATION_MAX_BULK_DELETE" env-default:"200"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
