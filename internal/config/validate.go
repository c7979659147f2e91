package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if strings.TrimSpace(c.Auth.AdminUsername) == "" {
		return fmt.Errorf("auth.admin_username must not be empty")
	}

	// bcrypt hashes are 60 bytes and start with a $2 prefix.
	if !strings.HasPrefix(c.Auth.AdminPasswordHash, "$2") {
		return fmt.Errorf("auth.admin_password_hash must be a bcrypt hash")
	}

	if c.Audit.DefaultPageSize <= 0 {
		return fmt.Errorf("audit.default_page_size must be > 0 (got %d)", c.Audit.DefaultPageSize)
	}
	if c.Audit.MaxPageSize < c.Audit.DefaultPageSize {
		return fmt.Errorf("audit.max_page_size must be >= default_page_size (got %d < %d)",
			c.Audit.MaxPageSize, c.Audit.DefaultPageSize)
	}
	if c.Audit.RecentActivityDays <= 0 {
		return fmt.Errorf("audit.recent_activity_days must be > 0 (got %d)", c.Audit.RecentActivityDays)
	}

	return nil
}
