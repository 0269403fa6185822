package configs

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Query   QueryConfig   `mapstructure:"query" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// StorageConfig holds rollup store configuration.
type StorageConfig struct {
	Dir string `mapstructure:"dir" validate:"required_unless=InMemory true"`
	// InMemory runs the store without persistence; used by tests and local
	// experiments.
	InMemory bool `mapstructure:"in_memory"`
}

// QueryConfig holds query-layer configuration.
type QueryConfig struct {
	CacheTTLSeconds int   `mapstructure:"cache_ttl_seconds" validate:"min=0"`
	CacheMaxBytes   int64 `mapstructure:"cache_max_bytes" validate:"required,min=1024"`
}
