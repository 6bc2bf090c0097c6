package config

import (
	"fmt"
	"strings"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// EventsEnabled reports whether prediction events are published
func (c *EventsConfig) EventsEnabled() bool {
	return c.Type != "" && c.Type != "none"
}
