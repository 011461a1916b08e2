package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "jobkeeper-data", c.DataDir)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, "127.0.0.1:50051", c.HealthAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.MaxAttachments)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"data_dir":   "/from/json",
		"server_url": "http://json:8080",
	})
	os.Args = []string{"cli", "-c", path, "-d", "/from/flag"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "/from/flag", cfg.DataDir)
	assert.Equal(t, "http://json:8080", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}
