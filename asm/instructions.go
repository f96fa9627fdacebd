package asm

import (
	"fmt"

	"github.com/hexaflex/word12asm/arch"
	"github.com/hexaflex/word12asm/internal/lexer"
)

// operandPos distinguishes the source half of a two-operand instruction
// from the destination half, since a lone REGISTER operand must land in the
// matching half of a REGISTER-shape word.
type operandPos int

const (
	posSrc operandPos = iota
	posDst
)

// dispatchInstruction validates and encodes a single instruction line. It
// fully validates operand count, grammar, and addressing-mode legality
// before emitting any word - unlike '.data', an instruction is all-or-
// nothing.
func (a *assembler) dispatchInstruction(tok lexer.Token) {
	op := tok.Opcode
	var src, dst *lexer.Token

	switch op.Arity() {
	case arch.ArityZero:
		end, diag := a.lex.Next()
		if diag != nil {
			a.error(end.Pos, "%s", diag.Error())
			return
		}
		if end.Type != lexer.END {
			a.error(end.Pos, "'%s' takes no operands", tok.Text)
			return
		}

	case arch.ArityOne:
		d, diag := a.readOperand()
		if diag != nil {
			a.error(d.Pos, "%s", diag.Error())
			return
		}
		dst = &d

		end, diag := a.lex.Next()
		if diag != nil {
			a.error(end.Pos, "%s", diag.Error())
			return
		}
		if end.Type != lexer.END {
			a.error(end.Pos, "unexpected text after operand of '%s'", tok.Text)
			return
		}

		if op != arch.PRN && dst.Type == lexer.NUMBER {
			a.error(dst.Pos, "'%s' does not accept an immediate operand", tok.Text)
			return
		}

	case arch.ArityTwo:
		s, diag := a.readOperand()
		if diag != nil {
			a.error(s.Pos, "%s", diag.Error())
			return
		}
		src = &s

		comma, diag := a.lex.Next()
		if diag != nil {
			a.error(comma.Pos, "%s", diag.Error())
			return
		}
		if comma.Type != lexer.COMMA {
			a.error(comma.Pos, "expected ',' between operands of '%s'", tok.Text)
			return
		}

		d, diag := a.readOperand()
		if diag != nil {
			a.error(d.Pos, "%s", diag.Error())
			return
		}
		dst = &d

		end, diag := a.lex.Next()
		if diag != nil {
			a.error(end.Pos, "%s", diag.Error())
			return
		}
		if end.Type != lexer.END {
			a.error(end.Pos, "unexpected text after operands of '%s'", tok.Text)
			return
		}

		if op == arch.LEA && src.Type != lexer.LABEL {
			a.error(src.Pos, "'lea' requires a label as its source operand")
			return
		}
		if op != arch.CMP && dst.Type == lexer.NUMBER {
			a.error(dst.Pos, "'%s' does not accept an immediate destination operand", tok.Text)
			return
		}
	}

	if src != nil && src.Type == lexer.NUMBER && (src.Int < -1024 || src.Int > 1023) {
		a.error(src.Pos, "immediate operand %d exceeds the 10-bit instruction range", src.Int)
		return
	}
	if dst != nil && dst.Type == lexer.NUMBER && (dst.Int < -1024 || dst.Int > 1023) {
		a.error(dst.Pos, "immediate operand %d exceeds the 10-bit instruction range", dst.Int)
		return
	}

	packed := src != nil && dst != nil && src.Type == lexer.REGISTER && dst.Type == lexer.REGISTER
	n := 1 // FIRST word
	switch {
	case packed:
		n++
	default:
		if src != nil {
			n++
		}
		if dst != nil {
			n++
		}
	}
	if !a.checkCapacity(tok.Pos, n) {
		return
	}

	a.appendCode(tok.Pos, arch.NewFirstWord(op, addressModeOf(src), addressModeOf(dst)))
	a.emitOperandWords(src, dst)
}

// readOperand reads the next token and ensures it is a shape valid for use
// as an instruction operand (NUMBER, LABEL, or REGISTER).
func (a *assembler) readOperand() (lexer.Token, *lexer.Diagnostic) {
	t, diag := a.lex.Next()
	if diag != nil {
		return t, diag
	}
	switch t.Type {
	case lexer.NUMBER, lexer.LABEL, lexer.REGISTER:
		return t, nil
	default:
		return t, &lexer.Diagnostic{Msg: fmt.Sprintf("expected an operand, found %s", t.Type)}
	}
}

func addressModeOf(t *lexer.Token) arch.AddressMode {
	if t == nil {
		return 0
	}
	switch t.Type {
	case lexer.NUMBER:
		return arch.Immediate
	case lexer.LABEL:
		return arch.Direct
	case lexer.REGISTER:
		return arch.Register
	}
	return 0
}

// emitOperandWords appends the one or two words following an instruction's
// FIRST word. When both operands are registers, they are packed into a
// single REGISTER-shape word (the register-packing optimization of §4.5).
func (a *assembler) emitOperandWords(src, dst *lexer.Token) {
	if src != nil && dst != nil && src.Type == lexer.REGISTER && dst.Type == lexer.REGISTER {
		a.appendCode(dst.Pos, arch.NewRegisterWord(src.Int, dst.Int))
		return
	}
	if src != nil {
		a.appendOperandWord(*src, posSrc)
	}
	if dst != nil {
		a.appendOperandWord(*dst, posDst)
	}
}

func (a *assembler) appendOperandWord(t lexer.Token, pos operandPos) {
	switch t.Type {
	case lexer.NUMBER:
		a.appendCode(t.Pos, arch.NewImmediateWord(t.Int))
	case lexer.LABEL:
		a.appendCode(t.Pos, arch.NewLabelRefWord(t.Text))
	case lexer.REGISTER:
		if pos == posSrc {
			a.appendCode(t.Pos, arch.NewRegisterWord(t.Int, -1))
		} else {
			a.appendCode(t.Pos, arch.NewRegisterWord(-1, t.Int))
		}
	}
}
