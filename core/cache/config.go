package cache

const (
	BackendNone     = "none"
	BackendDatabase = "database"
	BackendObject   = "object"
)

// Config defines where snapshots are persisted between runs.
type Config struct {
	Backend    string `mapstructure:"backend" default:"database"`
	Key        string `mapstructure:"key" default:"bookmarks_cache"`
	ObjectName string `mapstructure:"object_name" default:"snapshots/bookmarks-cache.json"`
}

// IsValidBackend reports whether backend is supported.
func IsValidBackend(backend string) bool {
	switch backend {
	case BackendNone, BackendDatabase, BackendObject:
		return true
	}
	return false
}
