// xclkctl is a one-shot tool for poking the clock chip directly over the
// bus: query the configured rate, round a requested one, or program one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xclockdac/xclockd/internal/clockgen"
	"github.com/xclockdac/xclockd/internal/config"
	"github.com/xclockdac/xclockd/internal/regio"
)

// request carries one invocation's parsed flags. doRound and doSet record
// flag presence so an explicit 0 is still a request, not a no-op.
type request struct {
	bus     string
	addr    int
	sim     bool
	get     bool
	round   uint32
	doRound bool
	set     uint32
	doSet   bool
	rates   bool
}

func main() {
	bus := flag.String("bus", "", "i2c bus name (empty picks the first)")
	addr := flag.Int("addr", config.DefaultI2CAddr, "7-bit i2c device address")
	sim := flag.Bool("sim", false, "use an in-memory register file instead of a bus")
	get := flag.Bool("get", false, "print the currently configured rate")
	round := flag.Uint("round", 0, "print the nearest achievable rate for this request")
	set := flag.Uint("set", 0, "program this exact rate")
	rates := flag.Bool("rates", false, "print all achievable rates")
	flag.Parse()

	req := request{
		bus:   *bus,
		addr:  *addr,
		sim:   *sim,
		get:   *get,
		round: uint32(*round),
		set:   uint32(*set),
		rates: *rates,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "round":
			req.doRound = true
		case "set":
			req.doSet = true
		}
	})

	if err := run(req); err != nil {
		fmt.Fprintf(os.Stderr, "xclkctl: %v\n", err)
		os.Exit(1)
	}
}

func run(req request) error {
	if req.rates {
		for _, hz := range clockgen.SupportedRates() {
			fmt.Println(hz)
		}
		return nil
	}
	if req.doRound {
		fmt.Println(clockgen.RoundRate(req.round))
		return nil
	}
	if !req.get && !req.doSet {
		return fmt.Errorf("nothing to do: pass -get, -round, -set, or -rates")
	}

	var rw regio.ReadWriter
	if req.sim {
		rw = regio.NewMem(nil)
	} else {
		if req.addr < 0x08 || req.addr > 0x77 {
			return fmt.Errorf("address 0x%02x outside 0x08..0x77", req.addr)
		}
		dev, err := regio.OpenI2C(req.bus, uint16(req.addr))
		if err != nil {
			return err
		}
		defer dev.Close()
		rw = dev
	}

	dev, err := clockgen.Open(rw)
	if err != nil {
		return err
	}

	if req.doSet {
		if err := dev.SetRate(req.set); err != nil {
			return err
		}
	}
	if req.get || req.doSet {
		rate := dev.RecalcRate()
		if rate == 0 {
			fmt.Printf("unknown (register 0x%02x)\n", dev.Code())
			return nil
		}
		fmt.Println(rate)
	}
	return nil
}
