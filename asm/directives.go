package asm

import (
	"github.com/hexaflex/word12asm/arch"
	"github.com/hexaflex/word12asm/internal/lexer"
)

// directiveData implements '.data': one or more comma-separated NUMBERs.
// Values are appended to the data image as they are read, and the
// comma/number grammar is only fully validated once END is reached - this
// mirrors the reference implementation's incremental emission rather than a
// validate-the-whole-list-first approach.
func (a *assembler) directiveData() {
	count := 0
	for {
		t, diag := a.lex.Next()
		if diag != nil {
			a.error(t.Pos, "%s", diag.Error())
			return
		}
		if t.Type != lexer.NUMBER {
			if count == 0 {
				a.error(t.Pos, "'.data' requires at least one number")
			} else {
				a.error(t.Pos, "expected a number in '.data' list, found %s", t.Type)
			}
			return
		}
		if !a.checkCapacity(t.Pos, 1) {
			return
		}
		a.appendData(arch.NewDataWord(t.Int))
		count++

		next, diag := a.lex.Next()
		if diag != nil {
			a.error(next.Pos, "%s", diag.Error())
			return
		}
		switch next.Type {
		case lexer.END:
			return
		case lexer.COMMA:
			continue
		default:
			a.error(next.Pos, "expected ',' or end of line in '.data' list")
			return
		}
	}
}

// directiveString implements '.string': a single STRING literal followed by
// END. Each byte's ASCII value becomes its own DATA word, followed by one
// zero-valued terminator word.
func (a *assembler) directiveString() {
	t, diag := a.lex.Next()
	if diag != nil {
		a.error(t.Pos, "%s", diag.Error())
		return
	}
	if t.Type != lexer.STRING {
		a.error(t.Pos, "'.string' requires a string literal, found %s", t.Type)
		return
	}

	n := len(t.Text) + 1
	if !a.checkCapacity(t.Pos, n) {
		return
	}

	end, diag := a.lex.Next()
	if diag != nil {
		a.error(end.Pos, "%s", diag.Error())
		return
	}
	if end.Type != lexer.END {
		a.error(end.Pos, "unexpected text after '.string' argument")
		return
	}

	for i := 0; i < len(t.Text); i++ {
		a.appendData(arch.NewDataWord(int(t.Text[i])))
	}
	a.appendData(arch.NewDataWord(0))
}

// directiveExtern implements '.extern': exactly one LABEL then END.
func (a *assembler) directiveExtern() {
	t, diag := a.lex.Next()
	if diag != nil {
		a.error(t.Pos, "%s", diag.Error())
		return
	}
	if t.Type != lexer.LABEL {
		a.error(t.Pos, "'.extern' requires a label name, found %s", t.Type)
		return
	}
	end, diag := a.lex.Next()
	if diag != nil {
		a.error(end.Pos, "%s", diag.Error())
		return
	}
	if end.Type != lexer.END {
		a.error(end.Pos, "unexpected text after '.extern' argument")
		return
	}
	if _, ok := a.tables.External.Add(t.Text, 0, false); !ok {
		a.error(t.Pos, "label '%s' is already declared external", t.Text)
	}
}

// directiveEntry implements '.entry': exactly one LABEL then END.
func (a *assembler) directiveEntry() {
	t, diag := a.lex.Next()
	if diag != nil {
		a.error(t.Pos, "%s", diag.Error())
		return
	}
	if t.Type != lexer.LABEL {
		a.error(t.Pos, "'.entry' requires a label name, found %s", t.Type)
		return
	}
	end, diag := a.lex.Next()
	if diag != nil {
		a.error(end.Pos, "%s", diag.Error())
		return
	}
	if end.Type != lexer.END {
		a.error(end.Pos, "unexpected text after '.entry' argument")
		return
	}
	if _, ok := a.tables.Exported.Add(t.Text, 0, false); !ok {
		a.error(t.Pos, "label '%s' is already declared an entry point", t.Text)
	}
}
