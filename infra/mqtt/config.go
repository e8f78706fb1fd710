package mqtt

import "fmt"

// Config defines the connection parameters for the run announcer.
type Config struct {
	Enabled        bool   `json:"enabled"`
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Topic          string `json:"topic"`
	QoS            byte   `json:"qos"`
	Retain         bool   `json:"retain"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "pathopt"
	}
	if c.Topic == "" {
		c.Topic = "pathopt/runs"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 5
	}
}

// Validate checks the configuration. A disabled announcer is always valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt: broker not set")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt: qos out of range: %d", c.QoS)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("mqtt: negative timeout")
	}
	return nil
}
