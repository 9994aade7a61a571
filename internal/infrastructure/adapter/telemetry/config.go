package telemetry

// Config is the `telemetry` section of the application configuration
type Config struct {
	ServiceName string  `mapstructure:"serviceName"`
	Namespace   string  `mapstructure:"namespace"`
	SampleRatio float64 `mapstructure:"sampleRatio"`
	LogSpans    bool    `mapstructure:"logSpans"`
}

// DefaultConfig returns the settings used when the config file leaves a key unset
func DefaultConfig() Config {
	return Config{
		ServiceName: "payment-ledger",
		Namespace:   "ledger",
		SampleRatio: 1,
	}
}
