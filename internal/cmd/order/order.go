// Package order parses order service flags and launches the service.
package order

import (
	"context"
	"flag"

	entrypoint "github.com/wharfside/marketplace/internal/platform/cmd"
	server "github.com/wharfside/marketplace/internal/services/order/app"
)

// Config holds order command configuration.
type Config struct {
	Port int `env:"WHARFSIDE_ORDER_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The order HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the order HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceOrder, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
