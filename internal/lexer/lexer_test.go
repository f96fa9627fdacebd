package lexer

import "testing"

func tokenize(t *testing.T, line string) []Token {
	t.Helper()
	l := New("test.as", 1, line)
	var toks []Token
	for {
		tok, diag := l.Next()
		if diag != nil {
			t.Fatalf("unexpected diagnostic %q at %q", diag.Error(), line)
		}
		if tok.Type == END {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestNextNumber(t *testing.T) {
	toks := tokenize(t, "-7")
	if len(toks) != 1 || toks[0].Type != NUMBER || toks[0].Int != -7 {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextRegister(t *testing.T) {
	toks := tokenize(t, "@r3")
	if len(toks) != 1 || toks[0].Type != REGISTER || toks[0].Int != 3 {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextLabelDeclaration(t *testing.T) {
	toks := tokenize(t, "LOOP: mov @r0, @r1")
	if len(toks) < 1 || toks[0].Type != LABEL_DECLARATION || toks[0].Text != "LOOP" {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextLabelReference(t *testing.T) {
	toks := tokenize(t, "jmp TARGET")
	if len(toks) != 2 || toks[1].Type != LABEL || toks[1].Text != "TARGET" {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextInstructionArity(t *testing.T) {
	toks := tokenize(t, "mov @r0, @r1")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4: %+v", len(toks), toks)
	}
	if toks[0].Type != INSTRUCTION_TWO_OPERANDS {
		t.Fatalf("mov Type = %v, want INSTRUCTION_TWO_OPERANDS", toks[0].Type)
	}
	if toks[1].Type != REGISTER || toks[2].Type != COMMA || toks[3].Type != REGISTER {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextDirectiveKnown(t *testing.T) {
	toks := tokenize(t, ".data 1, 2, 3")
	if len(toks) < 1 || toks[0].Type != DIRECTIVE || toks[0].Directive < 0 {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextDirectiveUnknown(t *testing.T) {
	toks := tokenize(t, ".bogus")
	if len(toks) != 1 || toks[0].Type != DIRECTIVE || toks[0].Directive >= 0 {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextString(t *testing.T) {
	toks := tokenize(t, `"hello"`)
	if len(toks) != 1 || toks[0].Type != STRING || toks[0].Text != "hello" {
		t.Fatalf("got %+v", toks)
	}
}

func TestNextUnterminatedString(t *testing.T) {
	l := New("test.as", 1, `"hello`)
	_, diag := l.Next()
	if diag == nil {
		t.Fatal("expected diagnostic for unterminated string")
	}
}

func TestNextInvalidToken(t *testing.T) {
	l := New("test.as", 1, "#bad")
	tok, diag := l.Next()
	if diag == nil || tok.Type != INVALID {
		t.Fatalf("got tok=%+v diag=%v, want INVALID + diagnostic", tok, diag)
	}
}

func TestValidateLabelTextRejectsKeyword(t *testing.T) {
	if diag := ValidateLabelText("mov", false); diag == nil {
		t.Fatal("expected rejection of keyword used as label")
	}
}

func TestValidateLabelTextRejectsTooLong(t *testing.T) {
	name := ""
	for i := 0; i < 32; i++ {
		name += "a"
	}
	if diag := ValidateLabelText(name, false); diag == nil {
		t.Fatal("expected rejection of 32-character label")
	}
}

func TestValidateLabelTextAcceptsMaxLength(t *testing.T) {
	name := ""
	for i := 0; i < 31; i++ {
		name += "a"
	}
	if diag := ValidateLabelText(name, false); diag != nil {
		t.Fatalf("expected 31-character label to be accepted, got %v", diag)
	}
}

func TestValidateLabelTextRequiresLeadingLetter(t *testing.T) {
	if diag := ValidateLabelText("1abc", false); diag == nil {
		t.Fatal("expected rejection of label starting with a digit")
	}
}

func TestNextEmptyLineIsEnd(t *testing.T) {
	l := New("test.as", 1, "   ")
	tok, diag := l.Next()
	if diag != nil || tok.Type != END {
		t.Fatalf("got tok=%+v diag=%v, want END", tok, diag)
	}
}
