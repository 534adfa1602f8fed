package config

import (
	"fmt"
	"reflect"
	"strings"

	"bookmark-manager/core/cache"
	"bookmark-manager/core/database"
	"bookmark-manager/core/logger"
	"bookmark-manager/core/reconcile"
	"bookmark-manager/core/server"
	"bookmark-manager/core/storage"
	"bookmark-manager/core/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Store selects the bookmark store implementation.
	Store store.Config `mapstructure:"store"`
	// Snapshot selects where cache snapshots are persisted.
	Snapshot cache.Config `mapstructure:"snapshot"`
	// Import holds the bundle root sentinels.
	Import reconcile.Config `mapstructure:"import"`
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !c.Store.IsValidDriver() {
		return fmt.Errorf("invalid store driver %q", c.Store.Driver)
	}
	if !cache.IsValidBackend(c.Snapshot.Backend) {
		return fmt.Errorf("invalid snapshot backend %q", c.Snapshot.Backend)
	}
	if strings.TrimSpace(c.Import.PrimarySentinel) == "" || strings.TrimSpace(c.Import.SecondarySentinel) == "" {
		return fmt.Errorf("import sentinels must not be empty")
	}
	if c.Import.PrimarySentinel == c.Import.SecondarySentinel {
		return fmt.Errorf("import sentinels must differ, both are %q", c.Import.PrimarySentinel)
	}
	return nil
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
