package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded before reading variables; a missing file is fine.
var envFile = ".env"

// parseEnv overlays Config with JOBKEEPER_* environment variables. Values
// from envFile never override variables already set in the environment.
// A malformed value panics, like the other loaders.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := os.LookupEnv(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str("JOBKEEPER_HTTP_ADDR", &cfg.EndpointAddrHTTP)
	str("JOBKEEPER_GRPC_ADDR", &cfg.EndpointAddrGRPC)
	str("JOBKEEPER_DATABASE_DSN", &cfg.DatabaseDSN)
	str("JOBKEEPER_SECRET_KEY", &cfg.SecretKey)
	dur("JOBKEEPER_ACCESS_TOKEN_TTL", &cfg.AccessTokenValidityDuration)
	dur("JOBKEEPER_PRESIGN_EXPIRY", &cfg.PresignExpiry)
	str("JOBKEEPER_S3_ROOT_USER", &cfg.S3RootUser)
	str("JOBKEEPER_S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	str("JOBKEEPER_S3_BUCKET", &cfg.S3Bucket)
	str("JOBKEEPER_S3_REGION", &cfg.S3Region)
	str("JOBKEEPER_S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)

	if v, ok := os.LookupEnv("JOBKEEPER_CORS_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("JOBKEEPER_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Debug = b
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
