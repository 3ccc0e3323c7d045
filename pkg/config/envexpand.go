package config

import "os"

// ExpandEnv expands environment variables in YAML content using Go's standard
// library, supporting both ${VAR} and $VAR syntax. Missing variables expand
// to empty string; Validate catches required fields left empty by that.
func ExpandEnv(data []byte) []byte {
	return []byte(os.ExpandEnv(string(data)))
}
