package asm

import (
	"github.com/hexaflex/word12asm/arch"
	"github.com/hexaflex/word12asm/internal/asmerr"
	"github.com/hexaflex/word12asm/internal/config"
	"github.com/hexaflex/word12asm/internal/lexer"
	"github.com/hexaflex/word12asm/internal/symtab"
)

// assembler holds all state for a single file's two-pass assembly. It is
// created fresh per file and discarded once Assemble returns - nothing
// crosses file boundaries, per §5 of the design.
type assembler struct {
	file   string
	cfg    config.Config
	tables *symtab.Tables

	code    []arch.Word
	codePos []lexer.Position // parallel to code, used to attribute pass-2 fixup errors
	data    []arch.Word
	ic, dc  int

	diags asmerr.List

	lex *lexer.Lexer // valid only while dispatching the current line
}

func newAssembler(file string, cfg config.Config) *assembler {
	return &assembler{file: file, cfg: cfg, tables: symtab.New()}
}

func (a *assembler) error(pos lexer.Position, format string, argv ...interface{}) {
	a.diags.Add(asmerr.New(pos.File, pos.Line, format, argv...))
}

func (a *assembler) checkCapacity(pos lexer.Position, n int) bool {
	if a.ic+a.dc+n > a.cfg.MemoryCapacity {
		a.error(pos, "assembly would exceed the %d-word memory capacity", a.cfg.MemoryCapacity)
		return false
	}
	return true
}

func (a *assembler) appendCode(pos lexer.Position, w arch.Word) {
	a.code = append(a.code, w)
	a.codePos = append(a.codePos, pos)
	a.ic++
}

func (a *assembler) appendData(w arch.Word) {
	a.data = append(a.data, w)
	a.dc++
}

// dispatchLine classifies and processes one already-expanded source line,
// per §4.3. It never returns an error directly; failures are recorded on
// a.diags and the line is simply abandoned.
func (a *assembler) dispatchLine(lineNumber int, text string) {
	if len(text) > a.cfg.MaxLineLength {
		a.diags.Add(asmerr.New(a.file, lineNumber, "line exceeds %d characters", a.cfg.MaxLineLength))
		return
	}

	a.lex = lexer.New(a.file, lineNumber, text)

	tok, diag := a.lex.Next()
	if diag != nil {
		a.error(tok.Pos, "%s", diag.Error())
		return
	}
	if tok.Type == lexer.END {
		return
	}

	var label *lexer.Token
	if tok.Type == lexer.LABEL_DECLARATION {
		saved := tok
		label = &saved
		tok, diag = a.lex.Next()
		if diag != nil {
			a.error(tok.Pos, "%s", diag.Error())
			return
		}
	}

	switch {
	case tok.Type == lexer.DIRECTIVE:
		a.dispatchDirective(label, tok)
	case tok.IsInstruction():
		a.dispatchInstructionLine(label, tok)
	default:
		if arch.LooksLikeMiscasedKeyword(tok.Text) {
			a.error(tok.Pos, "%q is not recognized; keywords are lowercase-only", tok.Text)
			return
		}
		a.error(tok.Pos, "expected a directive or instruction, found %s", tok.Type)
	}
}

func (a *assembler) dispatchDirective(label *lexer.Token, tok lexer.Token) {
	if tok.Directive < 0 {
		if arch.LooksLikeMiscasedKeyword(tok.Text) {
			a.error(tok.Pos, "%q is not recognized; keywords are lowercase-only", tok.Text)
			return
		}
		a.error(tok.Pos, "unrecognized directive %q", tok.Text)
		return
	}

	switch tok.Directive {
	case arch.DotData, arch.DotString:
		if label != nil {
			if _, ok := a.tables.Internal.Add(label.Text, a.ic+a.dc, true); !ok {
				a.error(label.Pos, "label '%s' already defined", label.Text)
				return
			}
		}
		if tok.Directive == arch.DotData {
			a.directiveData()
		} else {
			a.directiveString()
		}

	case arch.DotExtern:
		if label != nil {
			a.error(label.Pos, "a label declaration cannot precede '.extern'")
			return
		}
		a.directiveExtern()

	case arch.DotEntry:
		if label != nil {
			a.error(label.Pos, "a label declaration cannot precede '.entry'")
			return
		}
		a.directiveEntry()
	}
}

func (a *assembler) dispatchInstructionLine(label *lexer.Token, tok lexer.Token) {
	if label != nil {
		if _, ok := a.tables.Internal.Add(label.Text, a.ic, false); !ok {
			a.error(label.Pos, "label '%s' already defined", label.Text)
			return
		}
	}
	a.dispatchInstruction(tok)
}
