// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// It covers the VTN endpoint, the VEN identity, default reporting cadences,
// logging, and the operational HTTP endpoint.
package config
