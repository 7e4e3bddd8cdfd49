package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/config"
	"github.com/Veraticus/smartfood/internal/engine"
	"github.com/Veraticus/smartfood/internal/metrics"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/storage"
	"github.com/Veraticus/smartfood/internal/suggest"
)

const dateLayout = "2006-01-02"

// recorder collects the metrics of the running command. writeMetrics dumps
// it to metrics.file when the command finishes.
var recorder = metrics.New()

// loadConfig resolves the application configuration from viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// initStorage opens the database named by the configuration and migrates it.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newPantry builds the pantry service for the configured user.
func newPantry(store service.Storage, cfg *config.Config) *engine.Pantry {
	pantryConfig := engine.DefaultConfig()
	pantryConfig.Metrics = recorder
	pantryConfig.Cache.InventoryTTL = cfg.InventoryTTL
	pantryConfig.Cache.RecipesTTL = cfg.RecipesTTL
	pantryConfig.Cache.SuggestionsTTL = cfg.SuggestionsTTL
	pantryConfig.Cache.Retry = common.DefaultRetryOptions()
	pantryConfig.Cache.Retry.MaxAttempts = cfg.RetryAttempts
	pantryConfig.Cache.Retry.InitialDelay = cfg.RetryDelay
	if cfg.IsAdmin() {
		pantryConfig.Capabilities = suggest.AdminCapabilities
	}
	return engine.NewWithConfig(store, pantryConfig)
}

// openPantry loads the configuration, opens the store and builds the pantry.
// The returned close function releases the database.
func openPantry(ctx context.Context) (*engine.Pantry, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return newPantry(store, cfg), cfg, func() { _ = store.Close() }, nil
}

// parseExpiry accepts a YYYY-MM-DD date in local time.
func parseExpiry(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, common.NewValidationError("expires", "use YYYY-MM-DD")
	}
	return t, nil
}

// writeMetrics writes the collected metrics to the configured metrics file.
func writeMetrics() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return recorder.WriteTextfile(cfg.MetricsFile)
}
