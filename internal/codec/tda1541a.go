// Package codec models the TDA1541A DAC's digital audio interface: the
// rates it accepts, the one frame width it speaks, and the exact DAI wiring
// the board supports.
package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xclockdac/xclockd/internal/clockgen"
)

var (
	ErrInvalidDAIFormat = errors.New("codec: invalid dai format")
	ErrBadFrameSize     = errors.New("codec: bad frame size")
	ErrRateOutOfRange   = errors.New("codec: rate out of range")
)

// FrameFormat is the serial frame layout on the DAI.
type FrameFormat int

const (
	FormatI2S FrameFormat = iota
	FormatRightJustified
	FormatLeftJustified
)

// ClockInversion is the bit/frame clock polarity pairing.
type ClockInversion int

const (
	// InversionNone is normal bit clock, normal frame clock.
	InversionNone ClockInversion = iota
	InversionBitClock
	InversionFrameClock
	InversionBoth
)

// Provider says which side masters the bit and frame clocks.
type Provider int

const (
	// ProviderCodecBitFrameSlave: codec masters the bit clock, the CPU
	// masters the frame clock. The only wiring this board supports.
	ProviderCodecBitFrameSlave Provider = iota
	ProviderCodecMaster
	ProviderCPUMaster
)

// DAIFormat is one negotiated DAI configuration.
type DAIFormat struct {
	Format    FrameFormat
	Inversion ClockInversion
	Provider  Provider
}

// Playback capability limits of the tda1541a-hifi DAI.
const (
	ChannelsMin = 2
	ChannelsMax = 2
	RateMin     = 10000
	RateMax     = 200000
	FrameWidth  = 16
)

// TDA1541A tracks one codec instance's negotiated stream state.
type TDA1541A struct {
	mu   sync.Mutex
	rate uint32
}

func New() *TDA1541A {
	return &TDA1541A{}
}

// Name is the DAI name the card binds to.
func (c *TDA1541A) Name() string {
	return "tda1541a-hifi"
}

// ConstraintRates is the startup rate constraint list: exactly the
// frequencies the master clock can produce.
func (c *TDA1541A) ConstraintRates() []uint32 {
	return clockgen.SupportedRates()
}

// Outputs names the analog outputs fed by the DAC.
func (c *TDA1541A) Outputs() []string {
	return []string{"LINEVOUTL", "LINEVOUTR"}
}

// SetDAIFormat accepts only I2S with normal polarity and the codec as bit
// clock master, frame slave.
func (c *TDA1541A) SetDAIFormat(fmtSpec DAIFormat) error {
	want := DAIFormat{
		Format:    FormatI2S,
		Inversion: InversionNone,
		Provider:  ProviderCodecBitFrameSlave,
	}
	if fmtSpec != want {
		return fmt.Errorf("%w: %+v", ErrInvalidDAIFormat, fmtSpec)
	}
	return nil
}

// HWParams records the stream rate for a new configuration. Only 16-bit
// frames inside the playback rate window are accepted; a rejected call
// leaves the previously recorded rate in place.
func (c *TDA1541A) HWParams(rate uint32, width int) error {
	if width != FrameWidth {
		return fmt.Errorf("%w: %d bits", ErrBadFrameSize, width)
	}
	if rate < RateMin || rate > RateMax {
		return fmt.Errorf("%w: %d Hz", ErrRateOutOfRange, rate)
	}
	c.mu.Lock()
	c.rate = rate
	c.mu.Unlock()
	return nil
}

// Rate returns the last accepted stream rate, 0 before any stream ran.
func (c *TDA1541A) Rate() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}
