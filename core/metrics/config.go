package metrics

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled turns metric collection on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Namespace prefixes every series name.
	Namespace string `mapstructure:"namespace" default:"nested_models"`
}
