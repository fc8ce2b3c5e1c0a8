package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Output
	Copy       bool
	Normalize  bool
	OutputJSON bool

	// Batch
	Workers int

	// Rule extensions
	ExtraParams       []string
	ExtraPrefixes     []string
	KeepParams        []string
	ExtraASINPatterns []string

	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		JSONLog:    DefaultJSONLog,
		Copy:       DefaultCopy,
		Normalize:  DefaultNormalize,
		OutputJSON: DefaultOutputJSON,
		Workers:    DefaultWorkers,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultJSONLog)
	v.SetDefault("copy", DefaultCopy)
	v.SetDefault("normalize", DefaultNormalize)
	v.SetDefault("output.json", DefaultOutputJSON)
	v.SetDefault("batch.workers", DefaultWorkers)
	v.SetDefault("rules.extra_params", []string{})
	v.SetDefault("rules.extra_prefixes", []string{})
	v.SetDefault("rules.keep_params", []string{})
	v.SetDefault("amazon.extra_patterns", []string{})
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	cfgFile := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:          v.GetString("log.level"),
		JSONLog:           v.GetBool("log.json"),
		Copy:              v.GetBool("copy"),
		Normalize:         v.GetBool("normalize"),
		OutputJSON:        v.GetBool("output.json"),
		Workers:           v.GetInt("batch.workers"),
		ExtraParams:       v.GetStringSlice("rules.extra_params"),
		ExtraPrefixes:     v.GetStringSlice("rules.extra_prefixes"),
		KeepParams:        v.GetStringSlice("rules.keep_params"),
		ExtraASINPatterns: v.GetStringSlice("amazon.extra_patterns"),
		ConfigFile:        v.ConfigFileUsed(),
	}

	// CLI flags win over file and environment
	if cmd != nil {
		flags := cmd.Flags()
		if flags.Changed("verbose") {
			if ok, _ := flags.GetBool("verbose"); ok {
				cfg.LogLevel = "debug"
			}
		}
		if flags.Changed("quiet") {
			if ok, _ := flags.GetBool("quiet"); ok {
				cfg.LogLevel = "error"
			}
		}
		if flags.Changed("json") {
			cfg.OutputJSON, _ = flags.GetBool("json")
		}
		if flags.Changed("no-copy") {
			if ok, _ := flags.GetBool("no-copy"); ok {
				cfg.Copy = false
			}
		}
		if flags.Changed("normalize") {
			cfg.Normalize, _ = flags.GetBool("normalize")
		}
		if flags.Changed("workers") {
			cfg.Workers, _ = flags.GetInt("workers")
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// configDirs lists the directories searched for config.yaml
func configDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, ConfigDirName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", ConfigDirName))
	}
	return dirs
}
