package main

import (
	"flag"
	"log"

	"github.com/xclockdac/xclockd/internal/config"
)

func main() {
	output := flag.String("output", "cmd/xclockd/config.toml", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to the output path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = *output
		}
		if _, err := config.LoadDaemonConfig(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated daemon config at %s", path)
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote daemon config template to %s", *output)
}
