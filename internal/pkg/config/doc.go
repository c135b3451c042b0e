// Package config provides functionality for loading and managing the toolkit configuration.
//
// Settings are read from a YAML file through viper, completed with defaults,
// overridden by RSA_TOOLKIT_* environment variables and validated before use.
package config
