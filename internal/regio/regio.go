// Package regio is the byte-register transport boundary for devices that
// expose their configuration as single 8-bit registers behind an I2C/SMBus
// style command protocol.
package regio

// ReadWriter is one device's register interface. Implementations carry the
// bus handle and the device address; callers see only register offsets.
type ReadWriter interface {
	// ReadReg returns the byte currently latched at reg.
	ReadReg(reg uint8) (uint8, error)
	// WriteReg latches val at reg in a single write transaction.
	WriteReg(reg uint8, val uint8) error
}
