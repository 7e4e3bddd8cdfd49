package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/cook")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/home/cook/.local/share/fridge/fridge.db", cfg.DatabasePath)
	assert.Equal(t, RoleMember, cfg.Role)
	assert.Equal(t, 5*time.Minute, cfg.InventoryTTL)
	assert.Equal(t, time.Duration(0), cfg.RecipesTTL)
	assert.Equal(t, 10*time.Minute, cfg.SuggestionsTTL)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.InDelta(t, 1.0, cfg.EditStep, 1e-9)
	assert.False(t, cfg.IsAdmin())
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "/tmp/fridge.db")
	v.Set("user.role", "admin")
	v.Set("cache.inventory_ttl", "30s")
	v.Set("edit.step", 0.5)
	v.Set("metrics.file", "~/fridge.prom")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fridge.db", cfg.DatabasePath)
	assert.True(t, cfg.IsAdmin())
	assert.Equal(t, 30*time.Second, cfg.InventoryTTL)
	assert.InDelta(t, 0.5, cfg.EditStep, 1e-9)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "fridge.prom"), cfg.MetricsFile)
}

func TestConfigValidation(t *testing.T) {
	valid := Config{
		DatabasePath:  "/tmp/fridge.db",
		Role:          RoleMember,
		RetryAttempts: 3,
		EditStep:      1,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: common.ErrMissingConfig,
		},
		{
			name:    "unknown role",
			mutate:  func(c *Config) { c.Role = "chef" },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.SuggestionsTTL = -time.Second },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.RetryAttempts = 0 },
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "zero edit step",
			mutate:  func(c *Config) { c.EditStep = 0 },
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/cook")
	t.Setenv("FRIDGE_DATA", "/srv/fridge")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "home only", path: "~", want: "/home/cook"},
		{name: "under home", path: "~/fridge.db", want: "/home/cook/fridge.db"},
		{name: "env var", path: "$FRIDGE_DATA/fridge.db", want: "/srv/fridge/fridge.db"},
		{name: "braced env var", path: "${FRIDGE_DATA}/x.prom", want: "/srv/fridge/x.prom"},
		{name: "default database path", path: DefaultDatabasePath, want: "/home/cook/.local/share/fridge/fridge.db"},
		{name: "tilde inside is kept", path: "/tmp/~cook", want: "/tmp/~cook"},
		{name: "absolute", path: "/var/lib/fridge.db", want: "/var/lib/fridge.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
