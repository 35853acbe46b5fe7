package codec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xclockdac/xclockd/internal/clockgen"
	"github.com/xclockdac/xclockd/internal/testutil/testlog"
)

func TestConstraintRatesMatchClock(t *testing.T) {
	testlog.Start(t)
	c := New()
	if !reflect.DeepEqual(c.ConstraintRates(), clockgen.SupportedRates()) {
		t.Fatalf("constraint list diverged from clock table: %v", c.ConstraintRates())
	}
}

func TestSetDAIFormat(t *testing.T) {
	testlog.Start(t)
	c := New()
	good := DAIFormat{Format: FormatI2S, Inversion: InversionNone, Provider: ProviderCodecBitFrameSlave}
	if err := c.SetDAIFormat(good); err != nil {
		t.Fatalf("expected i2s/normal/codec-bit-master to be accepted: %v", err)
	}

	bad := []DAIFormat{
		{Format: FormatLeftJustified, Inversion: InversionNone, Provider: ProviderCodecBitFrameSlave},
		{Format: FormatI2S, Inversion: InversionBitClock, Provider: ProviderCodecBitFrameSlave},
		{Format: FormatI2S, Inversion: InversionNone, Provider: ProviderCPUMaster},
	}
	for _, fmtSpec := range bad {
		if err := c.SetDAIFormat(fmtSpec); !errors.Is(err, ErrInvalidDAIFormat) {
			t.Fatalf("expected ErrInvalidDAIFormat for %+v, got %v", fmtSpec, err)
		}
	}
}

func TestHWParamsWidthCheck(t *testing.T) {
	testlog.Start(t)
	c := New()
	if err := c.HWParams(44100, 16); err != nil {
		t.Fatalf("16-bit params rejected: %v", err)
	}
	if c.Rate() != 44100 {
		t.Fatalf("rate not recorded: %d", c.Rate())
	}

	for _, width := range []int{8, 24, 32} {
		if err := c.HWParams(48000, width); !errors.Is(err, ErrBadFrameSize) {
			t.Fatalf("expected ErrBadFrameSize for width %d, got %v", width, err)
		}
	}
	if c.Rate() != 44100 {
		t.Fatalf("rejected params overwrote rate: %d", c.Rate())
	}
}

func TestHWParamsRateWindow(t *testing.T) {
	testlog.Start(t)
	c := New()
	if err := c.HWParams(9999, 16); !errors.Is(err, ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange below window, got %v", err)
	}
	if err := c.HWParams(200001, 16); !errors.Is(err, ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange above window, got %v", err)
	}
	if err := c.HWParams(RateMin, 16); err != nil {
		t.Fatalf("rate window lower edge rejected: %v", err)
	}
	if err := c.HWParams(RateMax, 16); err != nil {
		t.Fatalf("rate window upper edge rejected: %v", err)
	}
}

func TestOutputs(t *testing.T) {
	testlog.Start(t)
	want := []string{"LINEVOUTL", "LINEVOUTR"}
	if got := New().Outputs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
}
