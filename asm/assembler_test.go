package asm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hexaflex/word12asm/arch"
	"github.com/hexaflex/word12asm/internal/config"
	"github.com/hexaflex/word12asm/internal/preprocessor"
)

func mustAssemble(t *testing.T, lines []string) *Output {
	t.Helper()
	out, diags := Assemble("test", lines, config.Default())
	if diags.Failed() {
		for _, e := range diags.Items() {
			t.Logf("diag: %s", e)
		}
		t.Fatalf("assembly failed")
	}
	return out
}

func decodeWords(t *testing.T, obj []byte) (ic, dc int, words []uint16) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(string(obj), "\n"), "\n")
	if len(lines) == 0 {
		t.Fatal("empty object file")
	}
	if _, err := fmt.Sscanf(lines[0], "%d %d", &ic, &dc); err != nil {
		t.Fatalf("bad header %q: %v", lines[0], err)
	}
	for _, l := range lines[1:] {
		words = append(words, decodeWord(t, l))
	}
	return ic, dc, words
}

func decodeWord(t *testing.T, line string) uint16 {
	t.Helper()
	if len(line) != 2 {
		t.Fatalf("malformed word line %q", line)
	}
	hi := strings.IndexByte(base64Alphabet, line[0])
	lo := strings.IndexByte(base64Alphabet, line[1])
	if hi < 0 || lo < 0 {
		t.Fatalf("malformed word line %q", line)
	}
	return uint16(hi)<<6 | uint16(lo)
}

func TestAssembleStopOnly(t *testing.T) {
	out := mustAssemble(t, []string{"stop"})
	ic, dc, words := decodeWords(t, out.Obj)
	if ic != 1 || dc != 0 {
		t.Fatalf("header = %d %d, want 1 0", ic, dc)
	}
	want := arch.NewFirstWord(arch.STOP, 0, 0).Encode()
	if words[0] != want {
		t.Fatalf("word = %012b, want %012b", words[0], want)
	}
	if out.Ext != nil || out.Ent != nil {
		t.Fatalf("expected no .ext/.ent output")
	}
}

func TestAssembleDataOnly(t *testing.T) {
	out := mustAssemble(t, []string{".data 5, -1"})
	ic, dc, words := decodeWords(t, out.Obj)
	if ic != 0 || dc != 2 {
		t.Fatalf("header = %d %d, want 0 2", ic, dc)
	}
	if words[0] != 0x005 || words[1] != 0xFFF {
		t.Fatalf("words = %03x %03x, want 005 fff", words[0], words[1])
	}
}

func TestAssembleString(t *testing.T) {
	out := mustAssemble(t, []string{`STR: .string "ab"`})
	ic, dc, words := decodeWords(t, out.Obj)
	if ic != 0 || dc != 3 {
		t.Fatalf("header = %d %d, want 0 3", ic, dc)
	}
	if words[0] != 'a' || words[1] != 'b' || words[2] != 0 {
		t.Fatalf("words = %v, want [97 98 0]", words)
	}
}

func TestAssembleExternalReference(t *testing.T) {
	out := mustAssemble(t, []string{".extern X", "mov X, @r1", "stop"})
	if out.Ext == nil {
		t.Fatal("expected .ext output")
	}
	if got := string(out.Ext); got != "X\t101\n" {
		t.Fatalf(".ext = %q, want \"X\\t101\\n\"", got)
	}
	if out.Ent != nil {
		t.Fatal("expected no .ent output")
	}
}

func TestAssembleEntryAndSelfReference(t *testing.T) {
	out := mustAssemble(t, []string{
		".entry MAIN",
		"MAIN: mov @r0, @r1",
		"jmp MAIN",
		"stop",
	})
	if got := string(out.Ent); got != "MAIN\t100\n" {
		t.Fatalf(".ent = %q, want \"MAIN\\t100\\n\"", got)
	}
	_, _, words := decodeWords(t, out.Obj)
	// mov @r0,@r1 packs into 2 words (slots 0,1); jmp MAIN emits FIRST + a
	// label-reference word at slot 3, resolved to the relocated address
	// of MAIN (100), ARE = Relocatable.
	jmpOperand := words[3]
	wantOperand := arch.NewImmediateWord(100)
	wantOperand.ARE = arch.Relocatable
	if jmpOperand != wantOperand.Encode() {
		t.Fatalf("jmp operand word = %012b, want %012b", jmpOperand, wantOperand.Encode())
	}
}

func TestAssembleRegisterPacking(t *testing.T) {
	out := mustAssemble(t, []string{"mov @r0, @r1"})
	ic, _, _ := decodeWords(t, out.Obj)
	if ic != 2 {
		t.Fatalf("ic = %d, want 2 (register packing must emit 2 words, not 3)", ic)
	}
}

func TestAssembleMacroExpansion(t *testing.T) {
	src := "mcro GREET\nmov @r0, @r1\nendmcro\nGREET\nGREET\nstop\n"
	expanded, err := preprocessor.Expand("test", src)
	if err != nil {
		t.Fatalf("preprocessor.Expand: %v", err)
	}
	if want := "mov @r0, @r1\nmov @r0, @r1\nstop\n"; expanded != want {
		t.Fatalf("expanded = %q, want %q", expanded, want)
	}

	out := mustAssemble(t, strings.Split(strings.TrimRight(expanded, "\n"), "\n"))
	ic, dc, _ := decodeWords(t, out.Obj)
	if dc != 0 || ic != 5 { // 2 + 2 + 1
		t.Fatalf("header = %d %d, want 5 0", ic, dc)
	}
}

func TestAssembleImmediateRangeBoundary(t *testing.T) {
	_, diags := Assemble("test", []string{"prn 1023"}, config.Default())
	if diags.Failed() {
		t.Fatalf("1023 should be accepted as an immediate operand")
	}
	_, diags = Assemble("test", []string{"prn 1024"}, config.Default())
	if !diags.Failed() {
		t.Fatal("1024 should be rejected as an immediate operand")
	}
}

func TestAssembleLineTooLong(t *testing.T) {
	_, diags := Assemble("test", []string{strings.Repeat("a", 81)}, config.Default())
	if !diags.Failed() {
		t.Fatal("expected a line-too-long diagnostic")
	}
}

func TestAssembleMiscasedMnemonicGetsClearerDiagnostic(t *testing.T) {
	_, diags := Assemble("test", []string{"MOV @r0, @r1"}, config.Default())
	if !diags.Failed() {
		t.Fatal("expected an uppercase mnemonic to be rejected")
	}
	found := false
	for _, d := range diags.Items() {
		if strings.Contains(d.Msg, "lowercase-only") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a diagnostic calling out lowercase-only keywords, got %v", diags.Items())
	}
}

func TestAssembleMiscasedDirectiveGetsClearerDiagnostic(t *testing.T) {
	_, diags := Assemble("test", []string{".DATA 1, 2"}, config.Default())
	if !diags.Failed() {
		t.Fatal("expected an uppercase directive to be rejected")
	}
	found := false
	for _, d := range diags.Items() {
		if strings.Contains(d.Msg, "lowercase-only") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a diagnostic calling out lowercase-only keywords, got %v", diags.Items())
	}
}
