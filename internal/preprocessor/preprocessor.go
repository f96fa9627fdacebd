// Package preprocessor implements the macro expander described in §4.1: a
// single-pass textual expander that strips comments and blank lines,
// captures macro bodies by source range, and re-expands macro references by
// replaying the captured range in place.
package preprocessor

import (
	"fmt"
	"strings"

	"github.com/hexaflex/word12asm/arch"
)

// Error reports a preprocessing failure. Any Error terminates preprocessing
// for the file immediately; the caller is expected to skip the file.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func errf(file string, line int, format string, args ...interface{}) *Error {
	return &Error{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

type sourceLine struct {
	text string
	line int // 1-based line number in the original file
}

type state int

const (
	outside state = iota
	inside
)

// expander holds the macro table built up over a single file's scan. It is
// scoped to one Expand call and discarded when that call returns - no state
// crosses file boundaries.
type expander struct {
	file   string
	macros map[string][]sourceLine
}

// Expand reads src (the full contents of one .as file) and returns the
// macro-expanded, comment- and blank-line-stripped .am text. file is used
// only for diagnostics.
func Expand(file, src string) (string, error) {
	e := &expander{file: file, macros: make(map[string][]sourceLine)}

	var out strings.Builder
	if err := e.run(splitLines(src), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

func splitLines(src string) []sourceLine {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	lines := make([]sourceLine, 0, len(raw))
	for i, text := range raw {
		if i == len(raw)-1 && text == "" {
			continue // no trailing empty line from a final newline
		}
		lines = append(lines, sourceLine{text: text, line: i + 1})
	}
	return lines
}

const (
	macroStart = "mcro "
	macroEnd   = "endmcro"
)

// run scans lines (either the whole file, or a captured macro body being
// replayed) and writes the expanded result to out. It calls itself on the
// captured body for each reference, which permits macro bodies to reference
// other macros (nested references, not nested definitions - see §4.1).
func (e *expander) run(lines []sourceLine, out *strings.Builder) error {
	st := outside
	var macroName string
	var macroBody []sourceLine
	var macroNameLine int

	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)

		switch st {
		case outside:
			body, isMacro := e.macros[trimmed]

			switch {
			case trimmed == "":
				// drop blank line
			case strings.HasPrefix(trimmed, ";"):
				// drop comment line
			case isMacro:
				if err := e.run(body, out); err != nil {
					return err
				}
			case strings.HasPrefix(trimmed, macroStart):
				name := strings.TrimSpace(trimmed[len(macroStart):])
				if err := e.validateMacroName(name, ln.line); err != nil {
					return err
				}
				macroName = name
				macroNameLine = ln.line
				macroBody = nil
				st = inside
			default:
				out.WriteString(ln.text)
				out.WriteByte('\n')
			}

		case inside:
			if strings.HasPrefix(trimmed, macroEnd) {
				if strings.TrimSpace(trimmed[len(macroEnd):]) != "" {
					return errf(e.file, ln.line, "'endmcro' must stand alone on its line")
				}
				e.macros[macroName] = macroBody
				st = outside
			} else {
				macroBody = append(macroBody, ln)
			}
		}
	}

	if st == inside {
		return errf(e.file, macroNameLine, "macro %q has no matching 'endmcro'", macroName)
	}
	return nil
}

func (e *expander) validateMacroName(name string, line int) error {
	if name == "" {
		return errf(e.file, line, "macro definition is missing a name")
	}
	if strings.ContainsAny(name, " \t") {
		return errf(e.file, line, "macro name %q must not contain whitespace", name)
	}
	if arch.IsKeyword(name) {
		return errf(e.file, line, "macro name %q collides with an instruction mnemonic", name)
	}
	if _, ok := arch.DirectiveFromName(name); ok {
		return errf(e.file, line, "macro name %q collides with a directive keyword", name)
	}
	if _, exists := e.macros[name]; exists {
		return errf(e.file, line, "macro %q is already defined", name)
	}
	return nil
}
