package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/xclockdac/xclockd/internal/daemon"
	"github.com/xclockdac/xclockd/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to daemon config toml")
	sim := flag.Bool("sim", false, "force sim mode (in-memory register file)")
	flag.Parse()

	cfg := daemon.DefaultServiceConfig()
	level := zerolog.InfoLevel
	if *configPath != "" {
		loaded, lvl, err := loadServiceConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xclockd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		level = lvl
	}
	if *sim {
		cfg.Sim = true
	}

	logger := observability.InitLogger(cfg.Name, level)

	svc, err := daemon.NewService(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("start failed")
		os.Exit(1)
	}
	if err := svc.Run(); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
