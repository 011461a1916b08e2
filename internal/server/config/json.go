package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
	"github.com/dmitrijs2005/jobkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations may be
// written as "15m" or as nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PresignExpiry               timex.Duration `json:"presign_expiry"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	Debug                       *bool          `json:"debug"`
}

// parseJson overlays Config with the file named by -c/-config. Keys that
// are absent keep their current value. Read or decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
	if c.CORSAllowedOrigins != nil {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}
