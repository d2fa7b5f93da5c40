package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/etfdesk/internal/flagx"
	"github.com/dmitrijs2005/etfdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be written either as a string like "10s"
// or as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StatePath      string         `json:"state_path"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c/-config flags. A missing flag means no JSON is loaded.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.BaseURL = jc.BaseURL
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.StatePath = jc.StatePath
}
