package config

import (
	"time"

	"github.com/forgeci/corekit/httpclient"
	"github.com/forgeci/corekit/logger"
	"github.com/forgeci/corekit/process"
	"github.com/forgeci/corekit/validation"
	"github.com/forgeci/corekit/version"
)

// ExecConfig holds the knobs for shell command execution.
type ExecConfig struct {
	// Timeout bounds every command. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// GracePeriod is how long a terminated process group gets between
	// SIGTERM and SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period"`
	// MaxLineBytes caps a single output line.
	MaxLineBytes int `yaml:"max_line_bytes" mapstructure:"max_line_bytes"`
}

// Spec builds a process.Spec for command with this config applied.
func (c ExecConfig) Spec(command string) process.Spec {
	return process.Spec{
		Command:      command,
		Timeout:      c.Timeout,
		GracePeriod:  c.GracePeriod,
		MaxLineBytes: c.MaxLineBytes,
	}
}

// ServiceConfig contains the configuration fields every service needs.
// Services extend it by embedding it in their own config structs:
//
//	type BuilderConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Workdir string `yaml:"workdir" mapstructure:"workdir"`
//	}
type ServiceConfig struct {
	Name        string            `yaml:"name" mapstructure:"name"`
	Environment string            `yaml:"environment" mapstructure:"environment"`
	Version     string            `yaml:"version" mapstructure:"version"`
	Debug       bool              `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config     `yaml:"logging" mapstructure:"logging"`
	Exec        ExecConfig        `yaml:"exec" mapstructure:"exec"`
	HTTP        httpclient.Config `yaml:"http" mapstructure:"http"`
}

// GetServiceConfig returns the base ServiceConfig. When embedded in a
// larger config struct this method is promoted, so the embedding
// struct satisfies interfaces asking for the base config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values. Embedding structs override
// this and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.HTTP.ApplyDefaults()
}

// Validate validates the base configuration fields. Embedding structs
// override this and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	err := validation.New().
		Required("name", c.Name).
		OneOf("environment", c.Environment,
			[]string{"development", "staging", "production"}).
		Min("exec.max_line_bytes", c.Exec.MaxLineBytes, 0).
		Custom(c.Exec.Timeout >= 0, "exec.timeout", "must not be negative").
		Validate()
	if err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.HTTP.Validate()
}
