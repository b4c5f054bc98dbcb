// Package config provides configuration loading and validation.
//
// Configuration comes from a YAML file, a .env file and environment
// variables, in that order of precedence (later sources win). Services
// embed ServiceConfig in their own config structs:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	}
//
//	var cfg MyConfig
//	err := config.Load("builder", &cfg)
package config
