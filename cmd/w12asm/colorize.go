package main

// ANSI codes matching the reference implementation's diagnostic coloring:
// bold red for errors, bold yellow for warnings.
const (
	ansiReset = "\033[0m"
	ansiError = "\033[1;31m"
	ansiWarn  = "\033[1;33m"
)

// Colorizer decorates diagnostic text for terminal display. It is an
// external collaborator of the core assembler - asm and its subpackages
// never format color codes themselves, they only classify a diagnostic's
// severity.
type Colorizer interface {
	Error(s string) string
	Warning(s string) string
}

type ansiColorizer struct{}

func (ansiColorizer) Error(s string) string   { return ansiError + s + ansiReset }
func (ansiColorizer) Warning(s string) string { return ansiWarn + s + ansiReset }

type plainColorizer struct{}

func (plainColorizer) Error(s string) string   { return s }
func (plainColorizer) Warning(s string) string { return s }
