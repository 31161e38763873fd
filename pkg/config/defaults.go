package config

const (
	defaultAPIListen = ":8081"

	defaultEventsBrokers = "localhost:9092"
	defaultEventsTopic   = "spool.runs"

	defaultConnectorCreatedBy = "openai"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Events: EventsConfig{
			Enabled: false,
			Brokers: defaultEventsBrokers,
			Topic:   defaultEventsTopic,
		},
		Connector: ConnectorConfig{
			CreatedBy: defaultConnectorCreatedBy,
		},
	}
}
