package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// codeIndent prefixes example command lines so they stand off from their
// descriptions.
const codeIndent = "    "

// Render parses page text and returns the styled output lines, one terminal
// row each. Description text wraps at the stylesheet width; command lines
// never wrap. It is purely functional: deterministic for a given input and
// stylesheet, with no I/O.
func Render(text string, ss *StyleSheet) []string {
	parsed := Parse(text)

	var out []string
	var prev Role = -1
	for _, line := range parsed {
		// A blank row separates blocks: after the title, between the
		// description and the examples, and between example pairs.
		switch {
		case prev == -1:
		case line.Role == RoleExampleDescription:
			out = append(out, "")
		case line.Role != prev && prev != RoleExampleDescription:
			out = append(out, "")
		}

		out = append(out, renderRows(line, ss)...)
		prev = line.Role
	}
	return out
}

// renderRows renders one parsed line into terminal rows, wrapping
// description roles when a width is set. The wrap is ANSI-aware, so styled
// spans never break an escape sequence.
func renderRows(line Line, ss *StyleSheet) []string {
	rendered := renderLine(line, ss)
	if ss.Width <= 0 {
		return []string{rendered}
	}
	switch line.Role {
	case RoleDescription, RoleExampleDescription:
		return strings.Split(ansi.Wordwrap(rendered, ss.Width, ""), "\n")
	}
	return []string{rendered}
}

// RenderText is Render joined into a single string with a trailing newline,
// ready to write to the terminal.
func RenderText(text string, ss *StyleSheet) string {
	lines := Render(text, ss)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderLine(line Line, ss *StyleSheet) string {
	var b strings.Builder
	if line.Role == RoleExampleCode {
		b.WriteString(codeIndent)
	}
	for _, span := range line.Spans {
		b.WriteString(ss.styleFor(span.Role).Render(span.Text))
	}
	return b.String()
}
