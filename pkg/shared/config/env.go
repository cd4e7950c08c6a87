// Package config holds helpers shared by configuration loaders.
package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR} or ${VAR:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv replaces ${VAR} and ${VAR:-default} references with environment values.
// An unset or empty variable without a default expands to the empty string.
//
// Example:
//
//	api:
//	  base_url: "${BRAZUCA_API:-http://localhost:8000}"
func ExpandEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if value, ok := os.LookupEnv(parts[1]); ok && value != "" {
			return value
		}
		if parts[2] != "" {
			return parts[3]
		}
		return ""
	})
}

// ExpandEnvBytes is ExpandEnv for file contents read before YAML/JSON unmarshaling.
func ExpandEnvBytes(input []byte) []byte {
	return []byte(ExpandEnv(string(input)))
}

// MissingEnvVars lists variables referenced without a default that are unset or empty.
func MissingEnvVars(input string) []string {
	seen := make(map[string]bool)
	missing := make([]string, 0)
	for _, m := range envVarPattern.FindAllStringSubmatch(input, -1) {
		name := m[1]
		if seen[name] || m[2] != "" {
			continue
		}
		seen[name] = true
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
