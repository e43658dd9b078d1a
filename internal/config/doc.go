// Package config handles configuration loading, parsing, and validation
// from environment variables (prefixed TASKTRACK_) and an optional
// config.yaml in the working directory. Environment variables win over the
// file, and the file wins over built-in defaults.
package config
