package config

import (
	"fmt"
	"strings"

	"github.com/openmargin/annotations-backend/internal/auth"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl (%v) must exceed access_token_ttl (%v)",
			c.Auth.RefreshTokenTTL, c.Auth.AccessTokenTTL)
	}

	clients, err := ParseClients(c.Auth.ClientsRaw)
	if err != nil {
		return fmt.Errorf("auth.clients: %w", err)
	}
	if len(clients) == 0 {
		return fmt.Errorf("auth.clients: at least one client must be registered")
	}
	c.Auth.Clients = clients

	if c.Annotation.TrustedAuthority == "" {
		return fmt.Errorf("annotation.trusted_authority is required")
	}
	if c.Annotation.MaxBulkDelete <= 0 {
		return fmt.Errorf("annotation.max_bulk_delete must be > 0 (got %d)", c.Annotation.MaxBulkDelete)
	}

	return nil
}

// ParseClients parses a comma-separated list of id:secret pairs into client
// credentials. An empty string returns a nil slice.
func ParseClients(raw string) ([]auth.ClientCredential, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	clients := make([]auth.ClientCredential, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, secret, ok := strings.Cut(p, ":")
		if !ok || id == "" || secret == "" {
			return nil, fmt.Errorf("invalid client entry %q (want id:secret)", p)
		}
		if len(secret) < 32 {
			return nil, fmt.Errorf("client %q secret must be at least 32 characters (got %d)", id, len(secret))
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate client id %q", id)
		}
		seen[id] = true
		clients = append(clients, auth.ClientCredential{ID: id, Secret: secret})
	}

	return clients, nil
}
