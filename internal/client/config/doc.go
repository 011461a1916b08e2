// Package config loads runtime configuration for the JobKeeper CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags: -d, -a, -g, -i, -m, -v.
//
// Example file:
//
//	{
//	  "data_dir": "/var/lib/jobkeeper",
//	  "server_url": "http://127.0.0.1:8080",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "max_attachments": 10
//	}
package config
