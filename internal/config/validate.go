package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BCryptCost < bcrypt.MinCost || c.Auth.BCryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BCryptCost)
	}

	if err := c.Campaign.validate(); err != nil {
		return fmt.Errorf("campaign: %w", err)
	}

	if c.Server.RateLimitPerMin <= 0 {
		return fmt.Errorf("server.rate_limit_per_min must be > 0 (got %d)", c.Server.RateLimitPerMin)
	}

	if c.Sweeper.BatchSize <= 0 {
		return fmt.Errorf("sweeper.batch_size must be > 0 (got %d)", c.Sweeper.BatchSize)
	}

	return nil
}

func (c *CampaignConfig) validate() error {
	if c.MaxInvestors <= 0 {
		return fmt.Errorf("max_investors must be > 0 (got %d)", c.MaxInvestors)
	}
	if c.ListLimitDefault <= 0 {
		return fmt.Errorf("list_limit_default must be > 0 (got %d)", c.ListLimitDefault)
	}
	if c.ListLimitMax < c.ListLimitDefault {
		return fmt.Errorf("list_limit_max must be >= list_limit_default (got %d < %d)", c.ListLimitMax, c.ListLimitDefault)
	}
	return nil
}
