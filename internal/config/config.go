// Package config loads optional assembler tuning parameters from a TOML
// file. All fields default to the constants fixed by the specification;
// a config file is never required for standard-conformant behavior.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the tunable limits the assembler enforces. The zero value is
// invalid; use Default to obtain the specification's hard-coded values.
type Config struct {
	// MemoryCapacity is the maximum combined IC+DC word count. Defaults to
	// 924 (the 1024-word machine, minus the 100-word base address region).
	MemoryCapacity int `toml:"memory_capacity"`

	// BaseAddress is added to every internal label's address during
	// relocation. Defaults to 100.
	BaseAddress int `toml:"base_address"`

	// MaxLineLength is the longest source line accepted, excluding the
	// newline. Defaults to 80.
	MaxLineLength int `toml:"max_line_length"`

	// MaxLabelLength defaults to 31. It is read from the file but not
	// applied: the lexer's label-length limit is fixed at 31 characters.
	MaxLabelLength int `toml:"max_label_length"`
}

// Default returns the configuration matching the specification exactly.
func Default() Config {
	return Config{
		MemoryCapacity: 924,
		BaseAddress:    100,
		MaxLineLength:  80,
		MaxLabelLength: 31,
	}
}

// Load reads a TOML configuration file at path, starting from Default and
// overriding only the fields present in the file. A missing file is not an
// error: Load silently returns Default, since configuration is always
// optional.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse configuration file %q", path)
	}

	return cfg, nil
}
