// Package main runs the feature tools MCP server over stdio.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ironsheep/feature-tools-mcp/internal/config"
	"github.com/ironsheep/feature-tools-mcp/internal/logging"
	"github.com/ironsheep/feature-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	flagEnvFile  = "env-file"
	flagLogLevel = "log-level"
)

func main() {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "feature-tools-mcp %s\n", Version)
		fmt.Fprintf(c.App.Writer, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(c.App.Writer, "  Git commit: %s\n", GitCommit)
	}

	app := &cli.App{
		Name:    "feature-tools-mcp",
		Usage:   "MCP server for spatial queries over image features",
		Version: Version,
		Description: "Communicates via MCP protocol over stdin/stdout. Configure it in your MCP client.\n\n" +
			"Environment variables:\n" +
			"   " + config.EnvLogLevel + "         debug, info, warn or error\n" +
			"   " + config.EnvImageCacheSize + "  decoded images kept in memory\n" +
			"   " + config.EnvMaxFeatures + "      features listed per response",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagEnvFile,
				Usage: "load environment variables from `FILE` before reading configuration",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "override the configured log level",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Server error: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String(flagEnvFile))
	if err != nil {
		return err
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New("feature-mcp", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debugw("starting", "version", Version, "built", BuildTime, "commit", GitCommit,
		"image_cache_size", cfg.ImageCacheSize, "max_features", cfg.MaxFeatures)

	server.Version = Version
	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

