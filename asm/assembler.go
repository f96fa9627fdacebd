// Package asm implements the two-pass assembler: it turns the expanded
// (macro-free, comment-free) lines of a single source file into a 12-bit
// object image plus external-reference and entry-symbol tables.
package asm

import (
	"github.com/hexaflex/word12asm/internal/asmerr"
	"github.com/hexaflex/word12asm/internal/config"
)

// Assemble runs both passes over the already-preprocessed lines of a single
// file and returns the artifacts to write on success. On failure it returns
// a nil Output together with every diagnostic collected; per §7, the caller
// skips writing any file for that input and continues with the next one.
func Assemble(file string, lines []string, cfg config.Config) (*Output, *asmerr.List) {
	a := newAssembler(file, cfg)

	for i, line := range lines {
		a.dispatchLine(i+1, line)
	}

	if a.diags.Failed() {
		return nil, &a.diags
	}

	for _, cerr := range a.tables.Verify() {
		a.diags.Add(asmerr.New(file, 0, "%s", cerr.Error()))
	}
	if a.diags.Failed() {
		return nil, &a.diags
	}

	out, err := a.output()
	if err != nil {
		a.diags.Add(asmerr.New(file, 0, "%s", err.Error()))
		return nil, &a.diags
	}

	return out, &a.diags
}
