// Package clockgen drives the XclockDAC programmable audio master clock.
// The chip latches one byte in a single control register; that byte selects
// which of eight fixed output frequencies the two crystals can produce.
package clockgen

// rateEntry maps one achievable output frequency to the register value that
// produces it.
type rateEntry struct {
	hz   uint32
	code uint8
}

// Ordered by frequency. For frequencies the hardware can generate with
// multiple settings, the one with lowest jitter is listed.
var rateTable = [...]rateEntry{
	{11025, 0b00000100},
	{22050, 0b00001100},
	{44100, 0b00000011},
	{48000, 0b00001011},
	{88200, 0b00000010},
	{96000, 0b00001010},
	{176400, 0b00000001},
	{192000, 0b00001001},
}

// SupportedRates returns the achievable output frequencies in ascending
// order. The returned slice is a copy.
func SupportedRates() []uint32 {
	out := make([]uint32, len(rateTable))
	for i, entry := range rateTable {
		out[i] = entry.hz
	}
	return out
}

// RoundRate maps an arbitrary requested frequency to the nearest one the
// hardware can produce. Requests below the smallest or above the largest
// table frequency clamp to the table edge. Between two entries the integer
// midpoint decides; the midpoint itself rounds up to the higher entry.
// RoundRate always answers from the table and has no side effects.
func RoundRate(hz uint32) uint32 {
	var prev *rateEntry
	for i := range rateTable {
		curr := &rateTable[i]

		if curr.hz == hz {
			return hz
		}

		// First entry above the request decides against its predecessor.
		if curr.hz > hz {
			if prev == nil {
				return curr.hz
			}
			mid := prev.hz + (curr.hz-prev.hz)/2
			if mid > hz {
				return prev.hz
			}
			return curr.hz
		}

		prev = curr
	}

	// Request above every entry: clamp to the top.
	return prev.hz
}

func codeForRate(hz uint32) (uint8, bool) {
	for _, entry := range rateTable {
		if entry.hz == hz {
			return entry.code, true
		}
	}
	return 0, false
}

func rateForCode(code uint8) (uint32, bool) {
	for _, entry := range rateTable {
		if entry.code == code {
			return entry.hz, true
		}
	}
	return 0, false
}
