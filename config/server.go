package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds the settings of the HTTP service.
//
// A TOML file may provide any subset of the fields; command-line flags
// override the file and defaults fill whatever is left:
//
//	port = "8080"
//	data_dir = "./checker_data"
//	max_body_bytes = 10485760
//	max_workers = 4
//
//	[check]
//	context_radius = 30
//	overlap_policy = "all"
//	report_language = "ar"
type ServerConfig struct {
	Port         string        `toml:"port"`
	DataDir      string        `toml:"data_dir"`
	MaxBodyBytes int64         `toml:"max_body_bytes"` // Request body limit for uploads and check requests
	MaxWorkers   int           `toml:"max_workers"`    // Concurrent batch jobs, and documents checked in parallel per job
	Check        CheckSettings `toml:"check"`          // Defaults for new sessions and stateless checks
}

// ApplyDefaults fills unset fields.
func (c *ServerConfig) ApplyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.DataDir == "" {
		c.DataDir = "./checker_data"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 10 << 20
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 4
	}
	c.Check.ApplyDefaults()
}

// Validate returns one message per invalid setting.
func (c *ServerConfig) Validate() []string {
	var errors []string
	if strings.TrimSpace(c.DataDir) == "" {
		errors = append(errors, "data_dir cannot be empty")
	}
	errors = append(errors, c.Check.Validate()...)
	return errors
}

// LoadServerConfig reads a TOML file into a ServerConfig with defaults applied.
// An empty path yields the defaults.
func LoadServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
		for _, key := range meta.Undecoded() {
			log.Printf("Warning: Unknown configuration key '%s' in %s ignored.", key.String(), path)
		}
	}

	cfg.ApplyDefaults()
	if problems := cfg.Validate(); len(problems) > 0 {
		return ServerConfig{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}
