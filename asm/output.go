package asm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/hexaflex/word12asm/arch"
	"github.com/hexaflex/word12asm/internal/symtab"
)

// base64Alphabet is the wire encoding of §4.7: each 12-bit word is split
// into two 6-bit groups, high-order group first.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func encodeWord(w uint16) [2]byte {
	return [2]byte{
		base64Alphabet[(w>>6)&0x3F],
		base64Alphabet[w&0x3F],
	}
}

// Output bundles the artifacts produced by one successful assembly. Ext and
// Ent are nil when the corresponding file would be empty - the caller must
// not create those files at all.
type Output struct {
	Obj []byte
	Ext []byte
	Ent []byte
}

// output runs the pass-2 fixup and emits every artifact. It is only called
// once pass 1 completed without diagnostics and cross-table validation
// succeeded.
func (a *assembler) output() (*Output, error) {
	a.tables.Relocate(a.cfg.BaseAddress)

	ext, err := a.resolveReferences()
	if err != nil {
		return nil, err
	}

	return &Output{
		Obj: a.emitObj(),
		Ext: ext,
		Ent: a.emitEnt(),
	}, nil
}

// resolveReferences walks the code image and fixes up every word flagged as
// a label reference, per §4.7 step 2. It returns the '.ext' file contents,
// or nil if no external reference was found.
func (a *assembler) resolveReferences() ([]byte, error) {
	var buf bytes.Buffer
	any := false

	for i := range a.code {
		w := &a.code[i]
		if !w.IsLabelRef {
			continue
		}

		if sym := a.tables.External.Find(w.LabelName); sym != nil {
			w.ARE = arch.External
			w.Operand = 0
			fmt.Fprintf(&buf, "%s\t%d\n", w.LabelName, i+a.cfg.BaseAddress)
			any = true
			continue
		}

		sym := a.tables.Internal.Find(w.LabelName)
		if sym == nil {
			return nil, newError(a.codePos[i], "label '%s' is not defined, and not declared external", w.LabelName)
		}
		w.ARE = arch.Relocatable
		w.Operand = sym.Address
	}

	if !any {
		return nil, nil
	}
	return buf.Bytes(), nil
}

func (a *assembler) emitObj() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d\n", a.ic, a.dc)
	for _, w := range a.code {
		b := encodeWord(w.Encode())
		buf.Write(b[:])
		buf.WriteByte('\n')
	}
	for _, w := range a.data {
		b := encodeWord(w.Encode())
		buf.Write(b[:])
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// emitEnt writes one line per '.entry' label. Names are sorted for
// deterministic output - the contract only pins per-line content, not
// table-iteration order (§9).
func (a *assembler) emitEnt() []byte {
	if a.tables.Exported.Len() == 0 {
		return nil
	}

	var names []string
	a.tables.Exported.Each(func(sym *symtab.Symbol) {
		names = append(names, sym.Name)
	})
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		addr := a.tables.Internal.Find(name).Address
		fmt.Fprintf(&buf, "%s\t%d\n", name, addr)
	}
	return buf.Bytes()
}
