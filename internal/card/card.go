// Package card wires the XclockDAC master clock, the TDA1541A codec, and
// the CPU I2S interface into one playback card, and keeps the clock's
// output locked to the active stream's sample rate.
package card

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xclockdac/xclockd/internal/clockgen"
	"github.com/xclockdac/xclockd/internal/codec"
)

const (
	// Name is the dai-link and card name.
	Name = "XclockDAC TDA1541A"

	// BClkRatio fixes 16 bit clocks per channel, two channels.
	BClkRatio = 16 * 2
)

// Card binds one clock provider and one codec instance.
type Card struct {
	clk   clockgen.Clock
	codec *codec.TDA1541A
	log   zerolog.Logger
}

// New validates the board's fixed DAI wiring against the codec and returns
// the assembled card.
func New(clk clockgen.Clock, dac *codec.TDA1541A, log zerolog.Logger) (*Card, error) {
	wiring := codec.DAIFormat{
		Format:    codec.FormatI2S,
		Inversion: codec.InversionNone,
		Provider:  codec.ProviderCodecBitFrameSlave,
	}
	if err := dac.SetDAIFormat(wiring); err != nil {
		return nil, fmt.Errorf("card: dai wiring rejected: %w", err)
	}
	return &Card{clk: clk, codec: dac, log: log}, nil
}

// Attach applies the default rate once. The clock table contains the
// default, so a failure here is a transport fault worth surfacing.
func (c *Card) Attach() error {
	if err := c.clk.SetRate(clockgen.DefaultRate); err != nil {
		return fmt.Errorf("card: apply default rate: %w", err)
	}
	c.log.Info().Uint32("rate", clockgen.DefaultRate).Msg("card attached")
	return nil
}

// Startup returns the stream rate constraint list, the same set for both
// the codec DAI and the clock.
func (c *Card) Startup() []uint32 {
	return c.codec.ConstraintRates()
}

// HWParams handles one stream configuration change: the codec validates
// the parameters, then the clock follows the stream rate. The clock is not
// touched when the codec rejects the stream.
func (c *Card) HWParams(rate uint32, width int) error {
	c.log.Debug().Uint32("rate", rate).Int("width", width).Msg("hw params")
	if err := c.codec.HWParams(rate, width); err != nil {
		return err
	}
	if err := c.clk.SetRate(rate); err != nil {
		return fmt.Errorf("card: sync clock to stream: %w", err)
	}
	return nil
}

// CurrentRate reports the clock's configured rate, 0 when unknown.
func (c *Card) CurrentRate() uint32 {
	return c.clk.RecalcRate()
}

// RoundRate exposes the clock's nearest-rate query for stream planning.
func (c *Card) RoundRate(hz uint32) uint32 {
	return c.clk.RoundRate(hz)
}
