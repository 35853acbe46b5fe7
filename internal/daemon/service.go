// Package daemon runs one xclockd instance: it opens the clock chip's
// register transport, attaches the device, wires the card, and serves the
// admin API.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/xclockdac/xclockd/internal/card"
	"github.com/xclockdac/xclockd/internal/clockgen"
	"github.com/xclockdac/xclockd/internal/clockreg"
	"github.com/xclockdac/xclockd/internal/codec"
	"github.com/xclockdac/xclockd/internal/config"
	"github.com/xclockdac/xclockd/internal/observability"
	"github.com/xclockdac/xclockd/internal/regio"
)

// ClockID is the registry id of the managed clock provider.
const ClockID = "clk-xclockdac"

// ServiceConfig configures the daemon runtime.
type ServiceConfig struct {
	Name        string
	Bus         string
	I2CAddr     uint16
	Sim         bool
	AdminAddr   string
	CorsOrigins []string
}

// DefaultServiceConfig returns the daemon defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:      "xclockd",
		Bus:       "",
		I2CAddr:   config.DefaultI2CAddr,
		Sim:       false,
		AdminAddr: ":9600",
	}
}

// Service owns the device, the card, and the admin surface.
type Service struct {
	cfg ServiceConfig
	log zerolog.Logger

	registry *clockreg.Registry
	dev      *clockgen.Device
	card     *card.Card
	closer   interface{ Close() error }
}

// NewService opens the transport (bus or sim), attaches the device, and
// assembles the card. The device ends up registered under ClockID with the
// default rate applied.
func NewService(cfg ServiceConfig, log zerolog.Logger) (*Service, error) {
	cfg = withDefaults(cfg)

	var (
		rw     regio.ReadWriter
		closer interface{ Close() error }
	)
	if cfg.Sim {
		rw = regio.NewMem(nil)
		log.Info().Msg("sim mode: in-memory register file")
	} else {
		dev, err := regio.OpenI2C(cfg.Bus, cfg.I2CAddr)
		if err != nil {
			return nil, err
		}
		rw = dev
		closer = dev
	}
	return newService(cfg, rw, closer, log)
}

// NewServiceWithTransport assembles the service on a caller-supplied
// register transport. The caller keeps ownership of the transport's
// lifetime.
func NewServiceWithTransport(cfg ServiceConfig, rw regio.ReadWriter, log zerolog.Logger) (*Service, error) {
	return newService(withDefaults(cfg), rw, nil, log)
}

func withDefaults(cfg ServiceConfig) ServiceConfig {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultServiceConfig().Name
	}
	if strings.TrimSpace(cfg.AdminAddr) == "" {
		cfg.AdminAddr = DefaultServiceConfig().AdminAddr
	}
	return cfg
}

func newService(cfg ServiceConfig, rw regio.ReadWriter, closer interface{ Close() error }, log zerolog.Logger) (*Service, error) {
	dev, err := clockgen.Open(meteredRegister{rw: rw, clock: ClockID})
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	registry := clockreg.NewRegistry()
	if err := registry.Register(ClockID, dev); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	c, err := card.New(dev, codec.New(), log)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	if err := c.Attach(); err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("daemon: attach card: %w", err)
	}
	observability.RecordClockRate(ClockID, dev.RecalcRate())

	return &Service{
		cfg:      cfg,
		log:      log,
		registry: registry,
		dev:      dev,
		card:     c,
		closer:   closer,
	}, nil
}

// Registry exposes the clock provider registry for embedding consumers.
func (s *Service) Registry() *clockreg.Registry {
	return s.registry
}

// Run serves the admin API until SIGINT/SIGTERM, then shuts down
// gracefully and releases the bus.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer s.Close()

	srv := &http.Server{
		Addr:    s.cfg.AdminAddr,
		Handler: s.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.AdminAddr).Msg("admin api listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close unregisters the clock and releases the transport.
func (s *Service) Close() {
	s.registry.Unregister(ClockID)
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close transport")
		}
	}
}

// meteredRegister counts control-register writes without the core knowing
// about metrics.
type meteredRegister struct {
	rw    regio.ReadWriter
	clock string
}

func (m meteredRegister) ReadReg(reg uint8) (uint8, error) {
	return m.rw.ReadReg(reg)
}

func (m meteredRegister) WriteReg(reg uint8, val uint8) error {
	err := m.rw.WriteReg(reg, val)
	observability.RecordRegisterWrite(m.clock, err)
	return err
}
