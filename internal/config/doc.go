// Package config loads the service configuration from YAML, applies
// defaults for everything left unset, and validates the result before the
// server starts. A missing config file is not an error: the defaults
// describe a fully working single-node setup with authentication disabled.
package config
