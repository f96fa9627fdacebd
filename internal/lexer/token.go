// Package lexer implements the line-level tokenizer described in the
// assembler's lexical grammar: a mutable cursor over one logical source
// line that yields typed tokens one at a time.
package lexer

import (
	"fmt"

	"github.com/hexaflex/word12asm/arch"
)

// Type identifies the lexical class of a Token.
type Type int

// Known token types.
const (
	END Type = iota
	COMMA
	NUMBER
	STRING
	REGISTER
	LABEL_DECLARATION
	LABEL
	DIRECTIVE
	INSTRUCTION_NO_OPERANDS
	INSTRUCTION_ONE_OPERAND
	INSTRUCTION_TWO_OPERANDS
	INVALID
)

var typeNames = map[Type]string{
	END:                      "end of line",
	COMMA:                    "comma",
	NUMBER:                   "number",
	STRING:                   "string",
	REGISTER:                 "register",
	LABEL_DECLARATION:        "label declaration",
	LABEL:                    "label",
	DIRECTIVE:                "directive",
	INSTRUCTION_NO_OPERANDS:  "instruction",
	INSTRUCTION_ONE_OPERAND:  "instruction",
	INSTRUCTION_TWO_OPERANDS: "instruction",
	INVALID:                  "invalid token",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Position identifies where a token was found, for diagnostics.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type Type
	Pos  Position

	Text string // raw text: label/directive name, register name, string contents

	Int       int          // NUMBER value, or REGISTER index
	Opcode    arch.Opcode  // valid when Type is one of the INSTRUCTION_* variants
	Directive arch.Directive // valid when Type == DIRECTIVE
}

// IsInstruction reports whether t classifies as any instruction variant.
func (t Token) IsInstruction() bool {
	switch t.Type {
	case INSTRUCTION_NO_OPERANDS, INSTRUCTION_ONE_OPERAND, INSTRUCTION_TWO_OPERANDS:
		return true
	}
	return false
}
