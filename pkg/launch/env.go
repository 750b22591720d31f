// SPDX-License-Identifier: Apache-2.0
package launch

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// isEnvTrue reports whether an environment variable is set to a truthy value.
func isEnvTrue(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// envValue retrieves key from an environment list, empty when absent.
func envValue(env []string, key string) string {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return strings.TrimPrefix(e, prefix)
		}
	}
	return ""
}

// setEnv replaces key in env when present, appending it otherwise.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// logEnvironmentTrace logs environment variables at trace level, redacting sensitive values.
func logEnvironmentTrace(env []string, logger hclog.Logger) {
	if !logger.IsTrace() {
		return
	}

	logger.Trace("🌍 Environment variables being passed to target:")
	for _, e := range env {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			value = "***"
		}
		logger.Trace("  →", "key", key, "value", value)
	}
}

// isSensitiveKey checks if an environment variable key should be redacted
// in logs. The NicLink environment file typically exports a Lichess API
// token, so anything token- or key-like stays hidden.
func isSensitiveKey(key string) bool {
	switch key {
	case "LICHESS_TOKEN", "BERSERK_TOKEN", "SSH_AUTH_SOCK", "PASSWORD":
		return true
	}
	upper := strings.ToUpper(key)
	return strings.HasSuffix(upper, "_TOKEN") ||
		strings.HasSuffix(upper, "_SECRET") ||
		strings.HasSuffix(upper, "_API_KEY")
}

// ♟️🕰️🚀
