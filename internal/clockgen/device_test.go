package clockgen

import (
	"errors"
	"testing"

	"github.com/xclockdac/xclockd/internal/regio"
	"github.com/xclockdac/xclockd/internal/testutil/testlog"
)

func TestOpenSeedsFromReadback(t *testing.T) {
	testlog.Start(t)
	mem := regio.NewMem(map[uint8]uint8{RegClockSet: 0b00000011})
	dev, err := Open(mem)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := dev.RecalcRate(); got != 44100 {
		t.Fatalf("RecalcRate after readback = %d, want 44100", got)
	}
}

func TestOpenUnknownPowerOnCode(t *testing.T) {
	testlog.Start(t)
	// Factory default 0x00 matches no table entry; that is a valid state.
	dev, err := Open(regio.NewMem(nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := dev.RecalcRate(); got != 0 {
		t.Fatalf("RecalcRate for unknown code = %d, want 0", got)
	}
}

func TestOpenReadFailure(t *testing.T) {
	testlog.Start(t)
	mem := regio.NewMem(nil)
	mem.ReadErr = errors.New("bus nack")
	if _, err := Open(mem); err == nil {
		t.Fatalf("expected open to propagate readback failure")
	}
}

func TestSetRateThenRecalc(t *testing.T) {
	testlog.Start(t)
	mem := regio.NewMem(nil)
	dev, err := Open(mem)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, hz := range SupportedRates() {
		if err := dev.SetRate(hz); err != nil {
			t.Fatalf("SetRate(%d): %v", hz, err)
		}
		if got := dev.RecalcRate(); got != hz {
			t.Fatalf("RecalcRate after SetRate(%d) = %d", hz, got)
		}
	}
	latched, err := mem.ReadReg(RegClockSet)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if latched != 0b00001001 {
		t.Fatalf("latched code = 0x%02x, want 0x09 for 192000", latched)
	}
}

func TestSetRateInvalidDoesNoIO(t *testing.T) {
	testlog.Start(t)
	mem := regio.NewMem(map[uint8]uint8{RegClockSet: 0b00000011})
	dev, err := Open(mem)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dev.SetRate(50000); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if mem.Writes() != 0 {
		t.Fatalf("invalid rate performed %d register writes", mem.Writes())
	}
	if got := dev.RecalcRate(); got != 44100 {
		t.Fatalf("RecalcRate changed by rejected set: %d", got)
	}
}

func TestSetRateWriteFailureLeavesStateUnchanged(t *testing.T) {
	testlog.Start(t)
	mem := regio.NewMem(map[uint8]uint8{RegClockSet: 0b00000011})
	dev, err := Open(mem)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	busErr := errors.New("bus nack")
	mem.WriteErr = busErr
	if err := dev.SetRate(96000); !errors.Is(err, busErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := dev.RecalcRate(); got != 44100 {
		t.Fatalf("RecalcRate after failed write = %d, want 44100", got)
	}

	// A retry after the fault clears commits normally.
	mem.WriteErr = nil
	if err := dev.SetRate(96000); err != nil {
		t.Fatalf("retry SetRate: %v", err)
	}
	if got := dev.RecalcRate(); got != 96000 {
		t.Fatalf("RecalcRate after retry = %d, want 96000", got)
	}
}

func TestRoundThenSetApproximates(t *testing.T) {
	testlog.Start(t)
	dev, err := Open(regio.NewMem(nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rounded := dev.RoundRate(50000)
	if err := dev.SetRate(rounded); err != nil {
		t.Fatalf("SetRate(RoundRate(50000)): %v", err)
	}
	if got := dev.RecalcRate(); got != 48000 {
		t.Fatalf("RecalcRate = %d, want 48000", got)
	}
}

func TestDeviceImplementsClock(t *testing.T) {
	testlog.Start(t)
	dev, err := Open(regio.NewMem(nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var _ Clock = dev
}
