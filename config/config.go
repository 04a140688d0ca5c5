// Package config loads the 'serve' configuration file and keeps the service account
// credentials current while the server is running.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

type Config struct {
	Listen      string        `yaml:"listen"`
	Credentials string        `yaml:"credentials"`
	Timeout     time.Duration `yaml:"timeout"`
	Auth        Auth          `yaml:"auth"`
}

// Auth configures bearer token verification for tool invocations. An empty secret
// disables verification.
type Auth struct {
	Secret string `yaml:"secret"`
}

const (
	DEFAULT_LISTEN  = ":8080"
	DEFAULT_TIMEOUT = 30 * time.Second
)

func NewConfig(credentials string) *Config {
	return &Config{
		Listen:      DEFAULT_LISTEN,
		Credentials: credentials,
		Timeout:     DEFAULT_TIMEOUT,
	}
}

// Load decodes the YAML file over the existing configuration, so keys missing from
// the file retain their current values.
func (c *Config) Load(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}

	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid configuration file '%s' (%w)", file, err)
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("invalid configuration - missing 'listen' address")
	}

	if strings.TrimSpace(c.Credentials) == "" {
		return fmt.Errorf("invalid configuration - missing 'credentials' file")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid configuration - negative 'timeout' (%v)", c.Timeout)
	}

	return nil
}
