// Package style provides shared UI styling primitives including colors and
// icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#2563EB")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Header renders section headers in list and show output.
var Header = lipgloss.NewStyle().Bold(true)
