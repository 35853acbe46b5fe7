package regio

import (
	"errors"
	"testing"

	"github.com/xclockdac/xclockd/internal/testutil/testlog"
)

func TestMemReadWrite(t *testing.T) {
	testlog.Start(t)
	mem := NewMem(map[uint8]uint8{0x2F: 0x03})

	val, err := mem.ReadReg(0x2F)
	if err != nil || val != 0x03 {
		t.Fatalf("seeded read = 0x%02x err=%v", val, err)
	}
	val, err = mem.ReadReg(0x10)
	if err != nil || val != 0x00 {
		t.Fatalf("unseeded register should read zero, got 0x%02x err=%v", val, err)
	}

	if err := mem.WriteReg(0x2F, 0x0a); err != nil {
		t.Fatalf("write: %v", err)
	}
	val, _ = mem.ReadReg(0x2F)
	if val != 0x0a {
		t.Fatalf("read after write = 0x%02x, want 0x0a", val)
	}
	if mem.Writes() != 1 {
		t.Fatalf("write count = %d, want 1", mem.Writes())
	}
}

func TestMemErrorInjection(t *testing.T) {
	testlog.Start(t)
	mem := NewMem(map[uint8]uint8{0x2F: 0x03})
	readErr := errors.New("read fault")
	writeErr := errors.New("write fault")
	mem.ReadErr = readErr
	mem.WriteErr = writeErr

	if _, err := mem.ReadReg(0x2F); !errors.Is(err, readErr) {
		t.Fatalf("expected injected read error, got %v", err)
	}
	if err := mem.WriteReg(0x2F, 0x01); !errors.Is(err, writeErr) {
		t.Fatalf("expected injected write error, got %v", err)
	}
	if mem.Writes() != 0 {
		t.Fatalf("failed write must not count, got %d", mem.Writes())
	}

	mem.ReadErr = nil
	val, err := mem.ReadReg(0x2F)
	if err != nil || val != 0x03 {
		t.Fatalf("register changed by failed write: 0x%02x err=%v", val, err)
	}
}
