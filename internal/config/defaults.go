package config

// Default constants for application configuration
const (
	DefaultLogLevel   = "warn"
	DefaultJSONLog    = false
	DefaultCopy       = true
	DefaultNormalize  = false
	DefaultOutputJSON = false
	DefaultWorkers    = 0 // auto
	MaxWorkers        = 64

	EnvPrefix     = "PURIFY"
	ConfigName    = "config"
	ConfigType    = "yaml"
	ConfigDirName = "purify"
)
