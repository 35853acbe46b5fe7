package regio

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostOnce sync.Once

// I2CDev speaks the SMBus byte-data command protocol over one periph.io
// I2C device: a write is [command, value], a read is [command] then one
// returned byte.
type I2CDev struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// OpenI2C initializes the host drivers once, opens the named bus ("" picks
// the first available one), and binds the device address.
func OpenI2C(busName string, addr uint16) (*I2CDev, error) {
	var initErr error
	hostOnce.Do(func() {
		_, initErr = host.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("regio: host init: %w", initErr)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("regio: open i2c bus %q: %w", busName, err)
	}
	return &I2CDev{
		bus: bus,
		dev: i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// Close releases the underlying bus handle.
func (d *I2CDev) Close() error {
	return d.bus.Close()
}

func (d *I2CDev) ReadReg(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := d.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("regio: read reg 0x%02x: %w", reg, err)
	}
	return buf[0], nil
}

func (d *I2CDev) WriteReg(reg uint8, val uint8) error {
	if err := d.dev.Tx([]byte{reg, val}, nil); err != nil {
		return fmt.Errorf("regio: write reg 0x%02x: %w", reg, err)
	}
	return nil
}
