package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xclockdac/xclockd/internal/daemon"
	"github.com/xclockdac/xclockd/internal/logging"
)

type fileConfig struct {
	Name        string   `toml:"name"`
	Bus         string   `toml:"bus"`
	I2CAddr     int      `toml:"i2c_addr"`
	Sim         bool     `toml:"sim"`
	AdminAddr   string   `toml:"admin_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

func loadServiceConfig(path string) (daemon.ServiceConfig, zerolog.Level, error) {
	cfg := daemon.DefaultServiceConfig()
	level := zerolog.InfoLevel

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return daemon.ServiceConfig{}, level, fmt.Errorf("load xclockd config: %w", err)
	}

	if meta.IsDefined("name") {
		if name := strings.TrimSpace(raw.Name); name != "" {
			cfg.Name = name
		}
	}

	if meta.IsDefined("bus") {
		cfg.Bus = strings.TrimSpace(raw.Bus)
	}

	if meta.IsDefined("i2c_addr") {
		if raw.I2CAddr < 0x08 || raw.I2CAddr > 0x77 {
			return daemon.ServiceConfig{}, level,
				fmt.Errorf("i2c_addr 0x%02x outside 0x08..0x77", raw.I2CAddr)
		}
		cfg.I2CAddr = uint16(raw.I2CAddr)
	}

	if meta.IsDefined("sim") {
		cfg.Sim = raw.Sim
	}

	if meta.IsDefined("admin_addr") {
		if addr := strings.TrimSpace(raw.AdminAddr); addr != "" {
			cfg.AdminAddr = addr
		}
	}

	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}

	if meta.IsDefined("log_level") {
		level = logging.ParseLevel(raw.LogLevel)
	}

	return cfg, level, nil
}

func normalizeOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
