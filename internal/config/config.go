package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DaemonConfig configures one xclockd instance: which bus the clock chip
// sits on and where the admin API listens.
type DaemonConfig struct {
	Name        string   `toml:"name"`
	Bus         string   `toml:"bus"`
	I2CAddr     int      `toml:"i2c_addr"`
	Sim         bool     `toml:"sim"`
	AdminAddr   string   `toml:"admin_addr"`
	CorsOrigins []string `toml:"cors_origins"`
	LogLevel    string   `toml:"log_level"`
}

func LoadDaemonConfig(path string) (DaemonConfig, error) {
	var cfg DaemonConfig
	if err := loadToml(path, &cfg); err != nil {
		return DaemonConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "xclockd"
	}
	if cfg.AdminAddr == "" {
		cfg.AdminAddr = ":9600"
	}
	if cfg.I2CAddr == 0 {
		cfg.I2CAddr = DefaultI2CAddr
	}
	if err := ValidateDaemonConfig(cfg); err != nil {
		return DaemonConfig{}, err
	}
	return cfg, nil
}

// DefaultI2CAddr is the clock generator's 7-bit bus address.
const DefaultI2CAddr = 0x60

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDaemonConfig(cfg DaemonConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("daemon config missing name")
	}
	if strings.TrimSpace(cfg.AdminAddr) == "" {
		return fmt.Errorf("daemon config missing admin_addr")
	}
	if !cfg.Sim {
		// 7-bit address space minus the reserved blocks.
		if cfg.I2CAddr < 0x08 || cfg.I2CAddr > 0x77 {
			return fmt.Errorf("daemon config i2c_addr 0x%02x outside 0x08..0x77", cfg.I2CAddr)
		}
	}
	return nil
}
