// Copyright (C) 2025 Keyspace-X Project
//
// This file is part of keyspace-auth-go.
//
// keyspace-auth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// keyspace-auth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with keyspace-auth-go.  If not, see <https://www.gnu.org/licenses/>.

package oracle

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Config describes how to reach the key directory and proof verifier.
type Config struct {
	// RPCEndpoint is the JSON-RPC URL the contract calls go through
	RPCEndpoint string `yaml:"rpcEndpoint"`
	// DirectoryAddress is the key directory contract (exposes root())
	DirectoryAddress string `yaml:"directoryAddress"`
	// VerifierAddress is the proof verifier contract (exposes verify(...))
	VerifierAddress string `yaml:"verifierAddress"`
	// Timeout bounds each read call, as a duration string like "10s"
	Timeout string `yaml:"timeout"`
}

const defaultTimeout = 10 * time.Second

// DefaultConfig returns a configuration with the endpoint set and sane
// defaults for the rest.
func DefaultConfig(endpoint string) *Config {
	return &Config{
		RPCEndpoint: endpoint,
		Timeout:     defaultTimeout.String(),
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Timeout == "" {
		c.Timeout = defaultTimeout.String()
	}
}

// CallTimeout parses the configured timeout, falling back to the default
// when unset.
func (c *Config) CallTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// Validate checks that every field needed to reach the two services is set
// and well-formed.
func (c *Config) Validate() error {
	if c.RPCEndpoint == "" {
		return fmt.Errorf("rpcEndpoint cannot be empty")
	}
	if !common.IsHexAddress(c.DirectoryAddress) {
		return fmt.Errorf("directoryAddress %q is not a valid address", c.DirectoryAddress)
	}
	if !common.IsHexAddress(c.VerifierAddress) {
		return fmt.Errorf("verifierAddress %q is not a valid address", c.VerifierAddress)
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("timeout %q is not a valid duration: %w", c.Timeout, err)
		} else if d <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
	}
	return nil
}
