package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aidanlsb/qref/internal/config"
)

// StyleSheet holds the compiled terminal styles for each line role. Built
// once at startup from configuration and treated as immutable afterwards.
type StyleSheet struct {
	Title              lipgloss.Style
	Description        lipgloss.Style
	ExampleDescription lipgloss.Style
	ExampleCode        lipgloss.Style
	Placeholder        lipgloss.Style
	InlineCode         lipgloss.Style

	// Width is the wrap limit for description text, in terminal cells.
	// Zero disables wrapping.
	Width int
}

// NewStyleSheet compiles the configured style attributes into lipgloss
// styles.
func NewStyleSheet(cfg config.StyleConfig) *StyleSheet {
	return &StyleSheet{
		Title:              compile(cfg.Title),
		Description:        compile(cfg.Description),
		ExampleDescription: compile(cfg.ExampleDescription),
		ExampleCode:        compile(cfg.ExampleCode),
		Placeholder:        compile(cfg.Placeholder),
		InlineCode:         compile(cfg.InlineCode),
	}
}

// Plain returns a stylesheet that applies no styling at all, for --raw-ish
// output on non-terminals and for golden tests.
func Plain() *StyleSheet {
	return &StyleSheet{}
}

func compile(s config.Style) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Color != "" {
		style = style.Foreground(lipgloss.Color(s.Color))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	return style
}

// styleFor returns the compiled style for a span role.
func (ss *StyleSheet) styleFor(role Role) lipgloss.Style {
	switch role {
	case RoleTitle:
		return ss.Title
	case RoleDescription:
		return ss.Description
	case RoleExampleDescription:
		return ss.ExampleDescription
	case RoleExampleCode:
		return ss.ExampleCode
	case RolePlaceholder:
		return ss.Placeholder
	case RoleInlineCode:
		return ss.InlineCode
	}
	return lipgloss.NewStyle()
}
