package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageType selects the persistence backend.
type StorageType string

const (
	StorageTypeSQLite StorageType = "sqlite"
	StorageTypeMySQL  StorageType = "mysql"
)

const (
	configFileName = "config"
	configDirName  = ".clipnest"

	// DefaultMaxItems caps how many non-favorite entries are retained.
	DefaultMaxItems = 200

	// DefaultPollIntervalMS is how often the monitor samples the clipboard.
	DefaultPollIntervalMS = 500
)

// MySQLConfig holds the coordinates for the optional MySQL backend.
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// StorageConfig describes where and how history is persisted.
type StorageConfig struct {
	Type     StorageType `mapstructure:"type"`
	DataDir  string      `mapstructure:"data_dir"`
	MaxItems int         `mapstructure:"max_items"`
	MySQL    MySQLConfig `mapstructure:"mysql"`
}

// Config is the full application configuration.
type Config struct {
	Storage        StorageConfig `mapstructure:"storage"`
	PollIntervalMS int           `mapstructure:"poll_interval_ms"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type:     StorageTypeSQLite,
			DataDir:  defaultDataDir(),
			MaxItems: DefaultMaxItems,
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Database: "clipnest",
			},
		},
		PollIntervalMS: DefaultPollIntervalMS,
		LogLevel:       "info",
		LogFormat:      "auto",
	}
}

// Load reads ~/.clipnest/config.yaml, falling back to defaults when the file
// is missing or a field is unset.
func Load() (*Config, error) {
	dir := defaultDataDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	def := Default()
	viper.SetDefault("storage.type", string(def.Storage.Type))
	viper.SetDefault("storage.data_dir", def.Storage.DataDir)
	viper.SetDefault("storage.max_items", def.Storage.MaxItems)
	viper.SetDefault("storage.mysql.host", def.Storage.MySQL.Host)
	viper.SetDefault("storage.mysql.port", def.Storage.MySQL.Port)
	viper.SetDefault("storage.mysql.user", def.Storage.MySQL.User)
	viper.SetDefault("storage.mysql.password", def.Storage.MySQL.Password)
	viper.SetDefault("storage.mysql.database", def.Storage.MySQL.Database)
	viper.SetDefault("poll_interval_ms", def.PollIntervalMS)
	viper.SetDefault("log_level", def.LogLevel)
	viper.SetDefault("log_format", def.LogFormat)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.MaxItems <= 0 {
		cfg.Storage.MaxItems = DefaultMaxItems
	}
	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = DefaultPollIntervalMS
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}

	return &cfg, nil
}

// Save writes the configuration back to ~/.clipnest/config.yaml.
func Save(cfg *Config) error {
	dir := defaultDataDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	viper.Set("storage.type", string(cfg.Storage.Type))
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("storage.max_items", cfg.Storage.MaxItems)
	viper.Set("storage.mysql.host", cfg.Storage.MySQL.Host)
	viper.Set("storage.mysql.port", cfg.Storage.MySQL.Port)
	viper.Set("storage.mysql.user", cfg.Storage.MySQL.User)
	viper.Set("storage.mysql.password", cfg.Storage.MySQL.Password)
	viper.Set("storage.mysql.database", cfg.Storage.MySQL.Database)
	viper.Set("poll_interval_ms", cfg.PollIntervalMS)
	viper.Set("log_level", cfg.LogLevel)
	viper.Set("log_format", cfg.LogFormat)

	return viper.WriteConfigAs(filepath.Join(dir, configFileName+".yaml"))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configDirName)
}
