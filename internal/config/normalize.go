package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeWorkdir(); err != nil {
		return err
	}
	if err := c.normalizeSession(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeWorkdir() error {
	c.Workdir.Strategy = strings.ToLower(strings.TrimSpace(c.Workdir.Strategy))
	if c.Workdir.Strategy == "" {
		c.Workdir.Strategy = defaultStrategy
	}
	if c.Workdir.Path != "" {
		expanded, err := expandPath(c.Workdir.Path)
		if err != nil {
			return fmt.Errorf("workdir.path: %w", err)
		}
		c.Workdir.Path = expanded
	}
	return nil
}

func (c *Config) normalizeSession() error {
	var err error
	if c.Session.ModelDir != "" {
		if c.Session.ModelDir, err = expandPath(c.Session.ModelDir); err != nil {
			return fmt.Errorf("session.model_dir: %w", err)
		}
	}
	if c.Session.OutputDir != "" {
		if c.Session.OutputDir, err = expandPath(c.Session.OutputDir); err != nil {
			return fmt.Errorf("session.output_dir: %w", err)
		}
	}
	for i, f := range c.Session.InputFiles {
		c.Session.InputFiles[i] = strings.TrimSpace(f)
	}
	for i, f := range c.Session.OutputFiles {
		c.Session.OutputFiles[i] = strings.TrimSpace(f)
	}
	return nil
}

func (c *Config) normalizeStore() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	expanded, err := expandPath(c.Store.Path)
	if err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	c.Store.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if expanded, err := expandPath(c.Logging.Dir); err == nil {
		c.Logging.Dir = expanded
	}
}
