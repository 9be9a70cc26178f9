package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/abelbrown/marquee/internal/config"
)

func runConfig() {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	reveal := fs.Bool("reveal", false, "Print the API key instead of a placeholder")
	write := fs.Bool("write", false, "Save the effective config to ~/.marquee/marquee.toml (API key omitted)")
	fs.Parse(os.Args[1:])

	_, cancel, cfg := setup()
	defer cancel()

	if *write {
		path := filepath.Join(config.DataDir(), "marquee.toml")
		if _, err := os.Stat(path); err == nil {
			log.Fatalf("%s already exists; edit it instead", path)
		}
		if err := cfg.WriteFile(path); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	out, err := cfg.TOML(*reveal)
	if err != nil {
		log.Fatalf("render config: %v", err)
	}
	os.Stdout.Write(out)
}
