package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Files      []string // Input file stems to assemble.
	ConfigPath string   // Optional TOML file overriding the default limits.
	NoColor    bool      // Disable ANSI colorized diagnostics.
}

// parseArgs parses command line arguments.
//
// It exits on -version. An empty file-stem list is returned as is; main
// then prints usage and exits with status 1, per §6 of the CLI surface
// contract.
func parseArgs() *Config {
	var c Config

	flag.Usage = func() {
		fmt.Printf("%s [options] <file stem> [<file stem> ...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.ConfigPath, "config", "", "Path to an optional TOML file overriding the default memory capacity, base address and line-length limit.")
	flag.BoolVar(&c.NoColor, "no-color", false, "Disable ANSI color in diagnostic output.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	c.Files = flag.Args()
	return &c
}
