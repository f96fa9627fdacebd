package arch

import "strconv"

// NumRegisters is the number of general-purpose registers, @r0 through @r7.
const NumRegisters = 8

// RegisterIndex returns the register number for a name of the form "r0"
// through "r7" (the lexer strips the leading '@'). Returns -1 if name is not
// a recognized register.
func RegisterIndex(name string) int {
	if len(name) != 2 || name[0] != 'r' {
		return -1
	}
	n := int(name[1] - '0')
	if n < 0 || n >= NumRegisters {
		return -1
	}
	return n
}

// RegisterName returns the canonical "@rN" spelling for register index n, or
// "" if n is out of range.
func RegisterName(n int) string {
	if n < 0 || n >= NumRegisters {
		return ""
	}
	return "@r" + strconv.Itoa(n)
}
