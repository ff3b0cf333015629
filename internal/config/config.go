// Package config provides YAML-based configuration loading for Trackside.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Trackside configuration, loaded from trackside.yaml.
type Config struct {
	Database DatabaseConfig  `yaml:"database"`
	Server   ServerConfig    `yaml:"server"`
	Auth     AuthConfig      `yaml:"auth"`
	Sections []SectionConfig `yaml:"sections"`
	Alerts   AlertsConfig    `yaml:"alerts"`
}

// DatabaseConfig holds connection settings for the train store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mysql" or "sqlite"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Path     string `yaml:"path"` // sqlite file path
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// AuthConfig holds token verification settings for the access gate.
type AuthConfig struct {
	Secret   string `yaml:"secret"`
	TokenTTL int    `yaml:"token_ttl_hours"`
}

// SectionConfig defines one track section under traffic control.
type SectionConfig struct {
	Name      string `yaml:"name"`
	Capacity  int    `yaml:"capacity"`
	Alternate string `yaml:"alternate"` // reroute target for trains leaving this section
}

// AlertsConfig holds settings for the congestion alert digest.
type AlertsConfig struct {
	Platform       string  `yaml:"platform"` // "slack", "discord", or "" to disable
	Token          string  `yaml:"token"`
	Channel        string  `yaml:"channel"`
	DigestCron     string  `yaml:"digest_cron"`
	DelayRateAlert float64 `yaml:"delay_rate_alert"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Database == "" {
		c.Database.Database = "trackside"
	}
	if c.Database.Path == "" {
		c.Database.Path = "trackside.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24
	}
	if len(c.Sections) == 0 {
		c.Sections = DefaultSections()
	}
	for i := range c.Sections {
		if c.Sections[i].Capacity == 0 {
			c.Sections[i].Capacity = 10
		}
	}
	if c.Alerts.DigestCron == "" {
		c.Alerts.DigestCron = "*/15 * * * *"
	}
	if c.Alerts.DelayRateAlert == 0 {
		c.Alerts.DelayRateAlert = 0.3
	}
}

// DefaultSections returns the stock four-section layout with paired
// reroute alternates.
func DefaultSections() []SectionConfig {
	return []SectionConfig{
		{Name: "Section A", Capacity: 10, Alternate: "Section B"},
		{Name: "Section B", Capacity: 10, Alternate: "Section A"},
		{Name: "Section C", Capacity: 10, Alternate: "Section D"},
		{Name: "Section D", Capacity: 10, Alternate: "Section C"},
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (mysql, sqlite)", c.Database.Driver))
	}
	if c.Auth.Secret == "" {
		errs = append(errs, "auth.secret is required")
	}
	names := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("sections[%d].name is required", i))
			continue
		}
		if names[s.Name] {
			errs = append(errs, fmt.Sprintf("sections[%d].name %q is duplicated", i, s.Name))
		}
		names[s.Name] = true
		if s.Capacity < 1 {
			errs = append(errs, fmt.Sprintf("sections[%d].capacity must be positive", i))
		}
		if s.Alternate == "" {
			errs = append(errs, fmt.Sprintf("sections[%d].alternate is required", i))
		}
		if s.Alternate == s.Name {
			errs = append(errs, fmt.Sprintf("sections[%d].alternate must name a different section", i))
		}
	}
	for i, s := range c.Sections {
		if s.Alternate != "" && s.Alternate != s.Name && !names[s.Alternate] {
			errs = append(errs, fmt.Sprintf("sections[%d].alternate %q is not a configured section", i, s.Alternate))
		}
	}
	switch c.Alerts.Platform {
	case "", "slack", "discord":
	default:
		errs = append(errs, fmt.Sprintf("alerts.platform %q is not supported (slack, discord)", c.Alerts.Platform))
	}
	if c.Alerts.Platform != "" {
		if c.Alerts.Token == "" {
			errs = append(errs, "alerts.token is required when alerts.platform is set")
		}
		if c.Alerts.Channel == "" {
			errs = append(errs, "alerts.channel is required when alerts.platform is set")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
