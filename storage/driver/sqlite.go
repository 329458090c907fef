package driver

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"

	"clipnest/config"
)

// NewSQLiteStorage opens (or creates) the single-file store under the data
// directory. This is the default backend.
func NewSQLiteStorage(cfg *config.StorageConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".clipnest")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "clipnest.db")
	imageDir := filepath.Join(dataDir, "images")

	return newStore(sqlite.Open(dbPath), cfg.MaxItems, imageDir)
}
