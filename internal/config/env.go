package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// Environment variable names.
const (
	EnvHome         = "EMBER_HOME"
	EnvNodeURL      = "EMBER_NODE_URL"
	EnvFaucetURL    = "EMBER_FAUCET_URL"
	EnvOutputFormat = "EMBER_OUTPUT_FORMAT"
	EnvVerbose      = "EMBER_VERBOSE"
	EnvLogLevel     = "EMBER_LOG_LEVEL"
	EnvGasBudget    = "EMBER_GAS_BUDGET"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNodeURL); v != "" {
		cfg.Network.NodeURL = SanitizeURL(v)
	}

	if v := os.Getenv(EnvFaucetURL); v != "" {
		cfg.Network.FaucetURL = SanitizeURL(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvGasBudget); v != "" {
		if budget, err := strconv.ParseUint(v, 10, 64); err == nil && budget > 0 {
			cfg.Gas.TransferBudget = budget
		}
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// SanitizeURL cleans a URL string by removing invalid characters and
// trimming whitespace. User-provided endpoints often carry copy-paste
// artifacts.
func SanitizeURL(url string) string {
	return sanitize.URL(strings.TrimSpace(url))
}
