package regio

import "sync"

// Mem is an in-memory register file. It backs the daemon's sim mode and the
// package tests; ReadErr/WriteErr inject transport failures.
type Mem struct {
	mu   sync.Mutex
	regs map[uint8]uint8

	// When non-nil, the corresponding operation fails without touching
	// the register file.
	ReadErr  error
	WriteErr error

	writes int
}

// NewMem returns a register file seeded with the given values. Registers
// never written read back as zero, matching an unprogrammed device.
func NewMem(seed map[uint8]uint8) *Mem {
	regs := make(map[uint8]uint8, len(seed))
	for reg, val := range seed {
		regs[reg] = val
	}
	return &Mem{regs: regs}
}

func (m *Mem) ReadReg(reg uint8) (uint8, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	return m.regs[reg], nil
}

func (m *Mem) WriteReg(reg uint8, val uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.regs[reg] = val
	m.writes++
	return nil
}

// Writes reports how many writes have been committed.
func (m *Mem) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
