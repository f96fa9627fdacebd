package preprocessor

import "testing"

func TestExpandStripsCommentsAndBlankLines(t *testing.T) {
	src := "mov r0, r1\n\n; a comment\nstop\n"
	got, err := Expand("test", src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := "mov r0, r1\nstop\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandMacro(t *testing.T) {
	src := "mcro GREET\nmov r0, r1\nendmcro\nGREET\nGREET\nstop\n"
	got, err := Expand("test", src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := "mov r0, r1\nmov r0, r1\nstop\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandNestedMacroReference(t *testing.T) {
	src := "mcro INNER\nadd r0, r1\nendmcro\nmcro OUTER\nINNER\nsub r1, r0\nendmcro\nOUTER\nstop\n"
	got, err := Expand("test", src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := "add r0, r1\nsub r1, r0\nstop\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandIdempotent(t *testing.T) {
	src := "mov r0, r1\nstop\n"
	first, err := Expand("test", src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	second, err := Expand("test", first)
	if err != nil {
		t.Fatalf("Expand (second pass): %v", err)
	}
	if first != second {
		t.Fatalf("not idempotent: %q != %q", first, second)
	}
}

func TestExpandUnterminatedMacro(t *testing.T) {
	_, err := Expand("test", "mcro GREET\nmov r0, r1\n")
	if err == nil {
		t.Fatal("expected an error for an unterminated macro definition")
	}
}

func TestExpandRedefinition(t *testing.T) {
	src := "mcro GREET\nstop\nendmcro\nmcro GREET\nstop\nendmcro\n"
	_, err := Expand("test", src)
	if err == nil {
		t.Fatal("expected an error for a redefined macro")
	}
}

func TestExpandEndmcroTrailingContent(t *testing.T) {
	_, err := Expand("test", "mcro GREET\nstop\nendmcro now\n")
	if err == nil {
		t.Fatal("expected an error for trailing content after 'endmcro'")
	}
}

func TestExpandMacroNameCollidesWithKeyword(t *testing.T) {
	_, err := Expand("test", "mcro mov\nstop\nendmcro\n")
	if err == nil {
		t.Fatal("expected an error for a macro name colliding with a mnemonic")
	}
}

func TestExpandEmptyBodyMacro(t *testing.T) {
	src := "mcro NOP\nendmcro\nNOP\nstop\n"
	got, err := Expand("test", src)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := "stop\n"
	if got != want {
		t.Fatalf("got %q, want %q (a zero-body macro must expand to nothing, not its own name)", got, want)
	}
}
