package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"

	"clipnest/config"
)

// NewMySQLStorage opens the optional MySQL backend. Captured image files
// still live on the local disk; only the rows move to the server.
func NewMySQLStorage(cfg *config.StorageConfig) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.MySQL.User,
		cfg.MySQL.Password,
		cfg.MySQL.Host,
		cfg.MySQL.Port,
		cfg.MySQL.Database,
	)

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".clipnest")
	}
	imageDir := filepath.Join(dataDir, "images")

	store, err := newStore(mysql.Open(dsn), cfg.MaxItems, imageDir)
	if err != nil {
		return nil, fmt.Errorf("connect to mysql: %w", err)
	}
	return store, nil
}
