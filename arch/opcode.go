// Package arch defines the target machine's instruction set, word shapes,
// and addressing modes, along with related helper functions.
package arch

import "strings"

// Opcode identifies one of the sixteen instructions. Its numeric value is
// also the bit pattern written into a FIRST word's op_code field.
type Opcode int

// Known opcodes. The value doubles as the 4-bit op_code field.
const (
	MOV Opcode = iota
	CMP
	ADD
	SUB
	NOT
	CLR
	LEA
	INC
	DEC
	JMP
	BNE
	RED
	PRN
	JSR
	RTS
	STOP
)

// Arity classifies how many operands an instruction expects.
type Arity int

const (
	ArityZero Arity = iota
	ArityOne
	ArityTwo
)

var mnemonics = [...]string{
	MOV:  "mov",
	CMP:  "cmp",
	ADD:  "add",
	SUB:  "sub",
	NOT:  "not",
	CLR:  "clr",
	LEA:  "lea",
	INC:  "inc",
	DEC:  "dec",
	JMP:  "jmp",
	BNE:  "bne",
	RED:  "red",
	PRN:  "prn",
	JSR:  "jsr",
	RTS:  "rts",
	STOP: "stop",
}

// OpcodeFromName returns the opcode matching name, and whether it was recognized.
// Matching is case-sensitive: mnemonics are lowercase-only, matching the
// assembler's reserved-word rules.
func OpcodeFromName(name string) (Opcode, bool) {
	for op, m := range mnemonics {
		if m == name {
			return Opcode(op), true
		}
	}
	return -1, false
}

// String returns the canonical mnemonic for the opcode.
func (o Opcode) String() string {
	if int(o) >= 0 && int(o) < len(mnemonics) {
		return mnemonics[o]
	}
	return "?"
}

// Arity returns the number of operands this opcode expects.
func (o Opcode) Arity() Arity {
	switch o {
	case MOV, CMP, ADD, SUB, LEA:
		return ArityTwo
	case NOT, CLR, INC, DEC, JMP, BNE, RED, PRN, JSR:
		return ArityOne
	default: // RTS, STOP
		return ArityZero
	}
}

// IsKeyword returns true if name collides with any instruction mnemonic.
func IsKeyword(name string) bool {
	_, ok := OpcodeFromName(name)
	return ok
}

// Mnemonics returns the ordered list of every instruction mnemonic, used to
// seed the lexer's keyword-classification trie.
func Mnemonics() []string {
	out := make([]string, len(mnemonics))
	copy(out, mnemonics[:])
	return out
}

// hasUpper reports whether s contains any uppercase letter. It backs
// LooksLikeMiscasedKeyword, which lets callers produce a clearer diagnostic
// when a keyword was typed in the wrong case ("MOV" is not recognized;
// keywords are lowercase-only).
func hasUpper(s string) bool {
	return strings.ToLower(s) != s
}

// LooksLikeMiscasedKeyword returns true when name would be a recognized
// mnemonic or directive if lowercased, but isn't in its current form. name
// may carry a directive's leading '.' ("MOV", ".DATA") or not ("data"),
// since callers see both a bare instruction token and a dot-prefixed
// directive token.
func LooksLikeMiscasedKeyword(name string) bool {
	if !hasUpper(name) {
		return false
	}
	lower := strings.ToLower(name)
	if IsKeyword(lower) {
		return true
	}
	if lower != "" && lower[0] == '.' {
		lower = lower[1:]
	}
	return IsDirectiveKeyword(lower)
}
