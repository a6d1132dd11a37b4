package server

import (
	"fmt"
	"net"
	"strconv"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080
)

type Config struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

type HTTPConfig struct {
	Host string `mapstructure:"host"`
	// Port 0 binds an ephemeral port.
	Port int `mapstructure:"port"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

func (c *Config) Validate() error {
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 0 and 65535", c.HTTP.Port)
	}
	if c.HTTP.Host == "" {
		c.HTTP.Host = DefaultHost
	}
	return nil
}

func (c *HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
