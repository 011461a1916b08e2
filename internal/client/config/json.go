package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
	"github.com/dmitrijs2005/jobkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Intervals use
// timex.Duration so they may be written as "3s" or as nanoseconds.
type JsonConfig struct {
	DataDir             string         `json:"data_dir"`
	ServerURL           string         `json:"server_url"`
	HealthAddr          *string        `json:"health_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	MaxAttachments      int            `json:"max_attachments"`
	Debug               bool           `json:"debug"`
}

// parseJson overlays Config with the file named by -c/-config. Absent keys
// keep their current value. Read or decode failures panic.
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

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.HealthAddr != nil {
		cfg.HealthAddr = *jc.HealthAddr
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxAttachments > 0 {
		cfg.MaxAttachments = jc.MaxAttachments
	}
	if jc.Debug {
		cfg.Debug = true
	}
}
