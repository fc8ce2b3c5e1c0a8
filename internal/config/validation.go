package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validate(c *Config) error {
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("batch workers must be between 0 and %d", MaxWorkers)
	}
	for key, list := range map[string][]string{
		"rules.extra_params":    c.ExtraParams,
		"rules.extra_prefixes":  c.ExtraPrefixes,
		"rules.keep_params":     c.KeepParams,
		"amazon.extra_patterns": c.ExtraASINPatterns,
	} {
		for _, entry := range list {
			if strings.TrimSpace(entry) == "" {
				return fmt.Errorf("%s must not contain blank entries", key)
			}
		}
	}
	return nil
}
