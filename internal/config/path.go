// Package config resolves the fridge configuration from viper: where the
// database lives, how long cached resources stay fresh, the user's role and
// the quantity editor step.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is where the inventory database lives unless
// database.path says otherwise. It is expanded by ExpandPath.
const DefaultDatabasePath = "$HOME/.local/share/fridge/fridge.db"

// ExpandPath resolves a leading ~ to the home directory, then $VAR and
// ${VAR} references. Paths such as database.path and metrics.file go through
// it, so "~/fridge.db" and "$XDG_DATA_HOME/fridge/fridge.db" both work.
// A ~ that cannot be resolved is left as is.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}
