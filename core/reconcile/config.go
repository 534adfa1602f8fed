package reconcile

// Config defines the bundle root sentinels.
type Config struct {
	PrimarySentinel   string `mapstructure:"primary_sentinel" default:"1"`
	SecondarySentinel string `mapstructure:"secondary_sentinel" default:"2"`
}
