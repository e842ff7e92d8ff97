// Package ui renders todo lists and status messages for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

func (t Theme) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

func (t Theme) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Error.Render("✖ "+msg))
}

func (t Theme) Info(w io.Writer, msg string) {
	fmt.Fprintln(w, t.Muted.Render(msg))
}

// Panel frames lines in the theme's border.
func (t Theme) Panel(lines ...string) string {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// ProgressBar renders "[███░░] done/total".
func (t Theme) ProgressBar(done, total, width int) string {
	if width <= 0 {
		width = 28
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat(t.BarFilled, filled) + strings.Repeat(t.BarEmpty, width-filled) +
		fmt.Sprintf("] %d/%d", done, total)
}

// Header is the title line with done/pending/total counts.
func (t Theme) Header(done, pending int) string {
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

// ItemLine renders one entry as "<box> <value>".
func (t Theme) ItemLine(it model.Item) string {
	if it.Done {
		return t.Success.Render(t.BoxChecked) + " " + t.DoneText.Render(it.Value)
	}
	return t.Muted.Render(t.BoxUnchecked) + " " + it.Value
}

// RenderList draws the whole list in a panel. With group set, pending
// items are listed before done ones under their own headings.
func (t Theme) RenderList(items []model.Item, group bool) string {
	done, pending := 0, 0
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}

	lines := []string{t.Header(done, pending), t.ProgressBar(done, len(items), 0), ""}
	if len(items) == 0 {
		lines = append(lines, t.Muted.Render("nothing to do"))
		return t.Panel(lines...)
	}

	if !group {
		for _, it := range items {
			lines = append(lines, t.ItemLine(it))
		}
		return t.Panel(lines...)
	}

	section := func(title string, want bool) {
		lines = append(lines, t.Accent.Render(title))
		n := 0
		for _, it := range items {
			if it.Done == want {
				lines = append(lines, "  "+t.ItemLine(it))
				n++
			}
		}
		if n == 0 {
			lines = append(lines, "  "+t.Muted.Render("none"))
		}
	}
	section("Pending", false)
	lines = append(lines, "")
	section("Done", true)
	return t.Panel(lines...)
}
