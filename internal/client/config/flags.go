package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-d string   local data directory
//	-a string   backend base URL
//	-g string   gRPC health endpoint (host:port, empty disables gRPC ping)
//	-i int      online check interval in seconds
//	-m int      maximum attachments per job
//	-v          debug logging
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-g", "-i", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "gRPC health address")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.IntVar(&cfg.MaxAttachments, "m", cfg.MaxAttachments, "maximum attachments per job")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
