package clockgen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xclockdac/xclockd/internal/regio"
)

const (
	// RegClockSet is the chip's single control register: the SMBus
	// command that latches a rate code.
	RegClockSet = 0x2F

	// DefaultRate is applied once at card attach.
	DefaultRate uint32 = 44100
)

// ErrInvalidRate reports a SetRate frequency absent from the rate table.
// No device I/O happens in that case.
var ErrInvalidRate = errors.New("clockgen: rate not achievable")

// Device is one physical XclockDAC bound to its register transport. It
// tracks the last code known to be latched in the control register: seeded
// by a readback at open, advanced only by successful writes. The mutex
// serializes SetRate and RecalcRate so a recalc never observes a write in
// flight.
type Device struct {
	mu   sync.Mutex
	rw   regio.ReadWriter
	code uint8
}

// Open binds a device and seeds its latched-code state from the control
// register. A power-on or externally programmed value that matches no table
// entry is not an error; RecalcRate reports it as 0.
func Open(rw regio.ReadWriter) (*Device, error) {
	code, err := rw.ReadReg(RegClockSet)
	if err != nil {
		return nil, fmt.Errorf("clockgen: read back control register: %w", err)
	}
	return &Device{rw: rw, code: code}, nil
}

// RoundRate implements Clock on the shared rate table.
func (d *Device) RoundRate(hz uint32) uint32 {
	return RoundRate(hz)
}

// SetRate writes the register code for an exactly achievable frequency.
// The tracked code is committed only after the write succeeds, so a caller
// retrying after a transport failure sees the previous state intact.
// Callers wanting approximation round first and pass the result here.
func (d *Device) SetRate(hz uint32) error {
	code, ok := codeForRate(hz)
	if !ok {
		return fmt.Errorf("%w: %d Hz", ErrInvalidRate, hz)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rw.WriteReg(RegClockSet, code); err != nil {
		return err
	}
	d.code = code
	return nil
}

// RecalcRate looks the tracked register code up in the rate table. An
// unrecognized code yields 0, a legitimate state rather than an error.
func (d *Device) RecalcRate() uint32 {
	d.mu.Lock()
	code := d.code
	d.mu.Unlock()

	hz, ok := rateForCode(code)
	if !ok {
		return 0
	}
	return hz
}

// Code returns the tracked control-register value.
func (d *Device) Code() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.code
}
