package clockgen

// Clock is the consumer-facing rate contract a clock provider implements.
// RoundRate and RecalcRate are queries; only SetRate touches the device.
type Clock interface {
	// RoundRate returns the nearest achievable frequency without side
	// effects.
	RoundRate(hz uint32) uint32
	// SetRate commits an exact achievable frequency to the device. It
	// fails with ErrInvalidRate for frequencies RoundRate would have had
	// to approximate.
	SetRate(hz uint32) error
	// RecalcRate reports the frequency the device is currently
	// configured for, or 0 when the latched register value matches no
	// known setting.
	RecalcRate() uint32
}
