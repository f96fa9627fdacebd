package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/hexaflex/word12asm/arch"
)

// keywords is a prefix tree mapping every reserved mnemonic and directive
// name to a token-construction function. None of the sixteen mnemonics or
// four directives is a prefix of another, so an exact-length lookup here
// never reports ambiguity - the trie is used purely as the pack's idiomatic
// keyword-dispatch structure, not for user-facing abbreviation.
var keywords = buildKeywordTree()

type keywordEntry struct {
	mkToken func(pos Position, text string) Token
}

func buildKeywordTree() *prefixtree.Tree[keywordEntry] {
	t := prefixtree.New[keywordEntry]()

	for _, name := range arch.Mnemonics() {
		op, _ := arch.OpcodeFromName(name)
		arity := op.Arity()
		t.Add(name, keywordEntry{mkToken: func(pos Position, text string) Token {
			tt := INSTRUCTION_NO_OPERANDS
			switch arity {
			case arch.ArityOne:
				tt = INSTRUCTION_ONE_OPERAND
			case arch.ArityTwo:
				tt = INSTRUCTION_TWO_OPERANDS
			}
			return Token{Type: tt, Pos: pos, Text: text, Opcode: op}
		}})
	}

	for _, name := range arch.Directives() {
		dir, _ := arch.DirectiveFromName(name)
		t.Add(name, keywordEntry{mkToken: func(pos Position, text string) Token {
			return Token{Type: DIRECTIVE, Pos: pos, Text: text, Directive: dir}
		}})
	}

	return t
}

// Diagnostic is the message of a lexical failure. It carries no file or line
// of its own; callers translate it into a full diagnostic using the
// returned token's position.
type Diagnostic struct {
	Msg string
}

func (d *Diagnostic) Error() string { return d.Msg }

func errf(format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Msg: fmt.Sprintf(format, args...)}
}

// Lexer tokenizes a single logical source line, one token at a time.
type Lexer struct {
	line string
	pos  int
	file string
	ln   int
}

// New creates a lexer positioned at the start of line.
func New(file string, lineNumber int, line string) *Lexer {
	return &Lexer{line: line, file: file, ln: lineNumber}
}

func (l *Lexer) position() Position {
	return Position{File: l.file, Line: l.ln}
}

func (l *Lexer) rest() string {
	return l.line[l.pos:]
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.line) && isSpace(l.line[l.pos]) {
		l.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Next reads and returns the next token, advancing the cursor past it.
// A non-nil Diagnostic accompanies a token whenever the lexer detected and
// already reported the reason a token is INVALID; the token itself is
// still returned so callers can continue best-effort (the dispatcher
// always fails the line regardless).
func (l *Lexer) Next() (Token, *Diagnostic) {
	l.skipSpace()
	pos := l.position()

	if l.pos >= len(l.line) {
		return Token{Type: END, Pos: pos, Text: "end of line"}, nil
	}

	// A colon anywhere in the remainder of the line marks the current word
	// as a label declaration - matching the reference lexer's rule
	// literally (the colon need not be attached to this specific word).
	hasColonAhead := strings.IndexByte(l.rest(), ':') >= 0

	if l.line[l.pos] == ',' {
		l.pos++
		return Token{Type: COMMA, Pos: pos, Text: ","}, nil
	}

	if l.line[l.pos] == '"' {
		return l.readString(pos)
	}

	start := l.pos
	for l.pos < len(l.line) && !isSpace(l.line[l.pos]) && l.line[l.pos] != ',' {
		l.pos++
	}
	text := l.line[start:l.pos]

	if len(text) == 0 {
		return Token{Type: END, Pos: pos, Text: "end of line"}, nil
	}

	if isNumberShape(text) {
		return l.readNumber(pos, text)
	}

	if hasColonAhead {
		return l.readLabelDeclaration(pos, text)
	}

	if len(text) > 31 {
		return Token{Type: INVALID, Pos: pos, Text: text}, errf("identifier %q is too long", text)
	}

	// The trie also matches a unique prefix ("mo" for "mov"), so only a word
	// that spells a keyword exactly is looked up in it.
	_, isDirective := arch.DirectiveFromName(text)
	if arch.IsKeyword(text) || isDirective {
		if entry, err := keywords.Find(text); err == nil {
			return entry.mkToken(pos, text), nil
		}
	}

	// Any word beginning with '.' classifies as DIRECTIVE at the lexical
	// level, recognized or not; an unknown directive name is a grammatical
	// failure the line dispatcher reports, not a lexical one.
	if text[0] == '.' {
		return Token{Type: DIRECTIVE, Pos: pos, Text: text, Directive: -1}, nil
	}

	if isAlpha(text[0]) {
		return l.readLabelReference(pos, text)
	}

	if text[0] == '@' {
		return l.readRegister(pos, text)
	}

	return Token{Type: INVALID, Pos: pos, Text: text}, errf("invalid token %q", text)
}

func (l *Lexer) readString(pos Position) (Token, *Diagnostic) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.line) && l.line[l.pos] != '"' {
		l.pos++
	}
	if l.pos >= len(l.line) {
		l.pos = len(l.line)
		return Token{Type: INVALID, Pos: pos, Text: l.line[start:]}, errf("unterminated string")
	}
	contents := l.line[start+1 : l.pos]
	l.pos++ // closing quote
	return Token{Type: STRING, Pos: pos, Text: contents}, nil
}

func isNumberShape(text string) bool {
	i := 0
	if text[0] == '+' || text[0] == '-' {
		i++
	}
	if i >= len(text) {
		return false
	}
	for ; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

func (l *Lexer) readNumber(pos Position, text string) (Token, *Diagnostic) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return Token{Type: INVALID, Pos: pos, Text: text}, errf("invalid number %q", text)
	}
	if v < -2048 || v > 2047 {
		return Token{Type: INVALID, Pos: pos, Text: text}, errf("number %q exceeds 12 bits", text)
	}
	return Token{Type: NUMBER, Pos: pos, Text: text, Int: v}, nil
}

func (l *Lexer) readRegister(pos Position, text string) (Token, *Diagnostic) {
	if len(text) != 3 || text[1] != 'r' || !isDigit(text[2]) {
		return Token{Type: INVALID, Pos: pos, Text: text}, errf("invalid register %q", text)
	}
	idx := arch.RegisterIndex(text[1:])
	if idx < 0 {
		return Token{Type: INVALID, Pos: pos, Text: text}, errf("invalid register %q", text)
	}
	return Token{Type: REGISTER, Pos: pos, Text: text, Int: idx}, nil
}

func (l *Lexer) readLabelDeclaration(pos Position, text string) (Token, *Diagnostic) {
	if diag := ValidateLabelText(text, true); diag != nil {
		return Token{Type: INVALID, Pos: pos, Text: text}, diag
	}
	name := text[:len(text)-1]
	return Token{Type: LABEL_DECLARATION, Pos: pos, Text: name}, nil
}

func (l *Lexer) readLabelReference(pos Position, text string) (Token, *Diagnostic) {
	if diag := ValidateLabelText(text, false); diag != nil {
		return Token{Type: INVALID, Pos: pos, Text: text}, diag
	}
	return Token{Type: LABEL, Pos: pos, Text: text}, nil
}

// ValidateLabelText checks a candidate label name against §4.2's rules:
// first character alphabetic, remaining characters alphanumeric (for a
// declaration, excluding the trailing colon), length <=31, and no collision
// with a reserved instruction or directive keyword. Declarations must end
// in ':'.
func ValidateLabelText(text string, declaration bool) *Diagnostic {
	name := text
	if declaration {
		if len(text) == 0 || text[len(text)-1] != ':' {
			return errf("label declaration must end with ':'")
		}
		name = text[:len(text)-1]
	}

	if len(name) == 0 || !isAlpha(name[0]) {
		return errf("label %q must start with a letter", name)
	}
	if len(name) > 31 {
		return errf("label %q is longer than 31 characters", name)
	}
	for i := 1; i < len(name); i++ {
		if !isAlpha(name[i]) && !isDigit(name[i]) {
			return errf("label %q must contain only letters and digits", name)
		}
	}
	if arch.IsKeyword(name) {
		return errf("label %q cannot be an instruction name", name)
	}
	if arch.IsDirectiveKeyword(name) {
		return errf("label %q cannot be a directive name", name)
	}
	return nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
