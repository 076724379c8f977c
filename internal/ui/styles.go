package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Muted (gray): secondary info, hints, cache-age warnings
// - No colored success/error/warning - use unicode symbols only

// Muted style for secondary info and hints
var Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
