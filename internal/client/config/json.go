package config

import (
	"encoding/json"
	"os"

	"github.com/possoft/posadmin/internal/flagx"
	"github.com/possoft/posadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the debounce can be specified either as a string
// like "150ms" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	SessionDBPath     string         `json:"session_db_path"`
	SessionSigningKey string         `json:"session_signing_key"`
	FilterDebounce    timex.Duration `json:"filter_debounce"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c/-config flags. When no path is given, nothing is
// loaded. Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.SessionSigningKey != "" {
		cfg.SessionSigningKey = jc.SessionSigningKey
	}
	if jc.FilterDebounce.Duration != 0 {
		cfg.FilterDebounce = jc.FilterDebounce.Duration
	}
}
