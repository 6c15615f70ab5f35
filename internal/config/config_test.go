package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "postgres://localhost/margin"},
		Auth: AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 720 * time.Hour,
			ClientsRaw:      "margin-web:" + testSecret,
		},
		Annotation: AnnotationConfig{
			TrustedAuthority: "margin.example.org",
			MaxBulkDelete:    200,
		},
	}
}

func TestConfig_Validate_HappyPath(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Auth.Clients, 1)
	assert.Equal(t, "margin-web", cfg.Auth.Clients[0].ID)
	assert.Equal(t, testSecret, cfg.Auth.Clients[0].Secret)
}

func TestConfig_Validate_TTLOrdering(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.RefreshTokenTTL = cfg.Auth.AccessTokenTTL
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.AccessTokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RequiresClient(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Auth.ClientsRaw = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RequiresTrustedAuthority(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Annotation.TrustedAuthority = ""
	assert.Error(t, cfg.Validate())
}

func TestParseClients(t *testing.T) {
	t.Parallel()

	clients, err := ParseClients("a:" + testSecret + " , b:" + testSecret)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "a", clients[0].ID)
	assert.Equal(t, "b", clients[1].ID)

	_, err = ParseClients("missing-secret")
	assert.Error(t, err)

	_, err = ParseClients("a:short")
	assert.Error(t, err, "short secrets must be rejected")

	_, err = ParseClients("a:" + testSecret + ",a:" + testSecret)
	assert.Error(t, err, "duplicate ids must be rejected")

	clients, err = ParseClients("   ")
	require.NoError(t, err)
	assert.Empty(t, clients)
}
