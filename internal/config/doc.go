// Package config manages CLI configuration stored in ~/.craftfile/config.yaml,
// with environment variable overrides under the CRAFTFILE_ prefix.
package config
