package main

import (
	"errors"
	"testing"

	"github.com/xclockdac/xclockd/internal/clockgen"
)

func TestRunNoAction(t *testing.T) {
	if err := run(request{addr: 0x60, sim: true}); err == nil {
		t.Fatalf("expected error when no action requested")
	}
}

func TestRunSimSetInvalidRate(t *testing.T) {
	err := run(request{addr: 0x60, sim: true, set: 50000, doSet: true})
	if !errors.Is(err, clockgen.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestRunSimSetZeroIsStillASet(t *testing.T) {
	// An explicit -set 0 reaches the device and is rejected there, rather
	// than being mistaken for "flag absent".
	err := run(request{addr: 0x60, sim: true, set: 0, doSet: true})
	if !errors.Is(err, clockgen.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for explicit zero, got %v", err)
	}
}

func TestRunSimSetAndGet(t *testing.T) {
	if err := run(request{addr: 0x60, sim: true, set: 48000, doSet: true}); err != nil {
		t.Fatalf("set 48000 on sim: %v", err)
	}
	if err := run(request{addr: 0x60, sim: true, get: true}); err != nil {
		t.Fatalf("get on sim: %v", err)
	}
}

func TestRunRoundNeedsNoBus(t *testing.T) {
	if err := run(request{addr: 0x02, round: 50000, doRound: true}); err != nil {
		t.Fatalf("round should not touch the bus: %v", err)
	}
}

func TestRunRoundZeroClampsLow(t *testing.T) {
	// -round 0 is a real query now: it clamps to the lowest entry instead
	// of falling through to "nothing to do".
	if err := run(request{addr: 0x02, round: 0, doRound: true}); err != nil {
		t.Fatalf("round 0 should clamp, not error: %v", err)
	}
}

func TestRunRejectsReservedAddress(t *testing.T) {
	if err := run(request{addr: 0x02, get: true}); err == nil {
		t.Fatalf("expected reserved address to be rejected before opening the bus")
	}
}
