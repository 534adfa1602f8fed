package store

const (
	DriverMemory   = "memory"
	DriverDatabase = "database"
)

// Config holds configuration for the bookmark store.
type Config struct {
	// Driver selects the implementation (memory, database).
	Driver string `mapstructure:"driver" default:"database"`
	// PrimaryTitle is the display name of the primary root container.
	PrimaryTitle string `mapstructure:"primary_title" default:"Bookmarks Bar"`
	// SecondaryTitle is the display name of the secondary root container.
	SecondaryTitle string `mapstructure:"secondary_title" default:"Other Bookmarks"`
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMemory, DriverDatabase:
		return true
	default:
		return false
	}
}
