package config

import "time"

// Config holds runtime settings for the posadmin CLI.
//
// Fields:
//   - APIBaseURL: base URL of the remote entity service.
//   - SessionDBPath: path of the local sqlite file holding the persisted session.
//   - SessionSigningKey: HMAC key for the persisted session token.
//   - FilterDebounce: quiet period before a roster filter pass runs.
type Config struct {
	APIBaseURL        string
	SessionDBPath     string
	SessionSigningKey string
	FilterDebounce    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.SessionDBPath = "posadmin.db"
	c.SessionSigningKey = "posadmin-local-session-key"
	c.FilterDebounce = 150 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
