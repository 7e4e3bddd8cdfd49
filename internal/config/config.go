package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/spf13/viper"
)

// Role names recognised in user.role.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath   string
	Role           string
	InventoryTTL   time.Duration
	RecipesTTL     time.Duration
	SuggestionsTTL time.Duration
	RetryDelay     time.Duration
	RetryAttempts  int
	EditStep       float64
	MetricsFile    string // Written after each command when set
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("cache.inventory_ttl", 5*time.Minute)
	v.SetDefault("cache.recipes_ttl", time.Duration(0))
	v.SetDefault("cache.suggestions_ttl", 10*time.Minute)
	v.SetDefault("user.role", RoleMember)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_delay", 100*time.Millisecond)
	v.SetDefault("edit.step", 1.0)
	v.SetDefault("metrics.file", "")
}

// Load reads the configuration from v, applying defaults for unset keys.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		Role:           v.GetString("user.role"),
		InventoryTTL:   v.GetDuration("cache.inventory_ttl"),
		RecipesTTL:     v.GetDuration("cache.recipes_ttl"),
		SuggestionsTTL: v.GetDuration("cache.suggestions_ttl"),
		RetryAttempts:  v.GetInt("retry.max_attempts"),
		RetryDelay:     v.GetDuration("retry.initial_delay"),
		EditStep:       v.GetFloat64("edit.step"),
		MetricsFile:    ExpandPath(v.GetString("metrics.file")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	switch c.Role {
	case RoleMember, RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown user.role %q", common.ErrInvalidConfig, c.Role)
	}
	if c.InventoryTTL < 0 || c.RecipesTTL < 0 || c.SuggestionsTTL < 0 {
		return fmt.Errorf("%w: cache TTLs cannot be negative", common.ErrInvalidConfig)
	}
	if c.RetryAttempts <= 0 {
		return fmt.Errorf("%w: retry.max_attempts must be positive", common.ErrInvalidConfig)
	}
	if c.EditStep <= 0 {
		return fmt.Errorf("%w: edit.step must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// IsAdmin reports whether the configured user manages the catalog rather than cooks from it.
func (c *Config) IsAdmin() bool {
	return c.Role == RoleAdmin
}
