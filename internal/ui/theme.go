package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText                            lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	BarFilled, BarEmpty      string
}

var monoBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// NewTheme returns the named theme; unknown names fall back to classic.
func NewTheme(name string) Theme {
	plain := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("14")),
			Success:      plain.Foreground(lipgloss.Color("10")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("11")),
			Selected:     plain.Bold(true).Foreground(lipgloss.Color("13")),
			DoneText:     plain.Faint(true).Strikethrough(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			BarFilled: "█", BarEmpty: "░",
		}
	case "mono":
		return Theme{
			Name:     "mono",
			Title:    plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Pending: plain,
			Selected: plain, DoneText: plain,
			Border:       monoBorder,
			BorderColor:  lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			BarFilled: "#", BarEmpty: ".",
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        plain.Bold(true),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("12")),
			Success:      plain.Foreground(lipgloss.Color("42")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("214")),
			Selected:     plain.Bold(true).Reverse(true),
			DoneText:     plain.Faint(true).Strikethrough(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			BarFilled: "█", BarEmpty: "░",
		}
	}
}
