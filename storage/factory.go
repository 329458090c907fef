package storage

import (
	"fmt"

	"clipnest/config"
	"clipnest/storage/driver"
)

// NewStorage creates the backend selected by the configuration.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case config.StorageTypeSQLite, "":
		return driver.NewSQLiteStorage(cfg)
	case config.StorageTypeMySQL:
		return driver.NewMySQLStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
