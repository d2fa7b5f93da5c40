package config

import "time"

// Config holds runtime settings for the console client.
//
// Fields:
//   - BaseURL: root URL of the backend REST endpoint.
//   - RequestTimeout: per-request deadline for API calls.
//   - StatePath: path of the local sqlite file holding session state.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StatePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.StatePath = "etfdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
