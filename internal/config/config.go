// Package config reads runtime settings shared by the fdock CLI and the
// fdockd daemon from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"folderdock/internal/core/watch"
	"folderdock/internal/launch"
)

// DefaultControlAddr is the loopback address the control server listens on
// when nothing else is configured.
const DefaultControlAddr = "127.0.0.1:7343"

// Config holds the tunables every binary shares. Flags layer on top of it,
// so an explicit flag always wins over an environment variable.
type Config struct {
	DataDir     string // overrides the per-user data root
	ControlAddr string // control server listen address
	MetricsAddr string // prometheus listen address, empty disables the endpoint
	QueueSize   int    // event channel capacity
	Overflow    string // overflow policy name: block, drop-oldest, drop-newest
}

// Load reads configuration from environment variables with defaults that
// match an unconfigured install.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:     os.Getenv(launch.EnvDataDir),
		ControlAddr: envOrDefault("FDOCK_CONTROL_ADDR", DefaultControlAddr),
		MetricsAddr: os.Getenv("FDOCK_METRICS_ADDR"),
		QueueSize:   watch.DefaultQueueSize,
		Overflow:    envOrDefault("FDOCK_OVERFLOW", watch.Block.String()),
	}

	if v := os.Getenv("FDOCK_QUEUE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid FDOCK_QUEUE_SIZE %q: expected a positive integer", v)
		}
		cfg.QueueSize = n
	}

	if _, err := watch.ParseOverflow(cfg.Overflow); err != nil {
		return nil, fmt.Errorf("invalid FDOCK_OVERFLOW: %w", err)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
