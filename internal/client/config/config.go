package config

import "time"

// Config holds runtime settings for the JobKeeper CLI.
type Config struct {
	DataDir             string
	ServerURL           string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	MaxAttachments      int
	Debug               bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "jobkeeper-data"
	c.ServerURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.MaxAttachments = 10
	c.Debug = false
}

// LoadConfig applies defaults, then the JSON file (if any), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
