package types

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	APIPortEnvKey      = "API_PORT"
	FormPortEnvKey     = "FORM_PORT"
	ClientsAPIURLKey   = "CLIENTS_API_URL"
	LegacyAPIURLKey    = "FASTAPI_URL"
	APITimeoutEnvKey   = "API_TIMEOUT"
	LogLevelEnvKey     = "LOG_LEVEL"
	LogFormatEnvKey    = "LOG_FORMAT"
	DefaultAPIPort     = 6500
	DefaultFormPort    = 8080
	DefaultClientsURL  = "http://localhost:6500/clients/"
	DefaultAPITimeout  = 10 * time.Second
	LogFormatJSON      = "json"
	LogFormatText      = "text"
	defaultLogLevelStr = "info"
)

// Config is the process configuration, read once at startup.
// ClientsAPIURL is where the form server and CLI reach the client API.
type Config struct {
	APIPort       int
	FormPort      int
	ClientsAPIURL string
	APITimeout    time.Duration
	LogLevel      log.Level
	LogFormat     string
}

// ConfigFromEnv reads Config from the environment, falling back to defaults
// for unset keys. Set but malformed values are errors.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		ClientsAPIURL: getenv(ClientsAPIURLKey, getenv(LegacyAPIURLKey, DefaultClientsURL)),
		LogFormat:     strings.ToLower(getenv(LogFormatEnvKey, LogFormatText)),
	}
	var err error
	if cfg.APIPort, err = portFromEnv(APIPortEnvKey, DefaultAPIPort); err != nil {
		return Config{}, err
	}
	if cfg.FormPort, err = portFromEnv(FormPortEnvKey, DefaultFormPort); err != nil {
		return Config{}, err
	}
	cfg.APITimeout = DefaultAPITimeout
	if v := os.Getenv(APITimeoutEnvKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q: must be a positive duration", APITimeoutEnvKey, v)
		}
		cfg.APITimeout = d
	}
	cfg.LogLevel, err = log.ParseLevel(getenv(LogLevelEnvKey, defaultLogLevelStr))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", LogLevelEnvKey, err)
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return Config{}, fmt.Errorf("invalid %s %q: must be %q or %q", LogFormatEnvKey, cfg.LogFormat, LogFormatText, LogFormatJSON)
	}
	return cfg, nil
}

// ApplyLogging configures the global logrus logger.
func (c Config) ApplyLogging() {
	log.SetLevel(c.LogLevel)
	if c.LogFormat == LogFormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func portFromEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil || p < 0 || p > 65535 {
		return 0, fmt.Errorf("invalid %s %q: must be a port number", key, v)
	}
	return p, nil
}

// getenv retrieves the value of the environment variable named by the key.
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
