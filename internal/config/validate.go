package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWorkdir(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWorkdir() error {
	switch c.Workdir.Strategy {
	case StrategyCurrent, StrategyTemporary, StrategyUserData:
	case StrategySpecified:
		if strings.TrimSpace(c.Workdir.Path) == "" {
			return errors.New("workdir.path must be set with the specified strategy")
		}
	default:
		return fmt.Errorf("workdir.strategy: unsupported value %q", c.Workdir.Strategy)
	}
	return nil
}

func (c *Config) validateSession() error {
	for _, f := range c.Session.InputFiles {
		if f == "" {
			return errors.New("session.input_files must not contain empty names")
		}
	}
	for _, f := range c.Session.OutputFiles {
		if f == "" {
			return errors.New("session.output_files must not contain empty names")
		}
	}
	if len(c.Session.OutputFiles) > 0 && strings.TrimSpace(c.Session.OutputDir) == "" {
		return errors.New("session.output_dir must be set when output_files are listed")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
