package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray).PaddingRight(2)
	styleCell   = lipgloss.NewStyle().PaddingRight(2)
	styleBest   = lipgloss.NewStyle().Foreground(colorGreen).PaddingRight(2)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Output helpers
// =============================================================================

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) printSuccess(format string, args ...any) {
	c.printf("%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func (c *CLI) printWarning(format string, args ...any) {
	c.printf("%s %s\n", styleIconWarning.Render(iconWarning), styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c *CLI) printTitle(title string) {
	c.printf("%s\n", styleTitle.Render(title))
}

func (c *CLI) printKeyValue(key, value string) {
	c.printf("  %s %s\n", styleKey.Render(key), styleValue.Render(value))
}

func (c *CLI) printFile(path string) {
	c.printf("  %s %s\n", styleDim.Render(iconArrow), styleValue.Render(path))
}

// printTable renders rows as aligned columns. Rows whose index is in
// highlight are drawn in the success color.
func (c *CLI) printTable(headers []string, rows [][]string, highlight int) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(styleHeader.Width(widths[i] + 2).Render(h))
	}
	c.printf("%s\n", strings.TrimRight(b.String(), " "))

	for r, row := range rows {
		b.Reset()
		style := styleCell
		if r == highlight {
			style = styleBest
		}
		for i, cell := range row {
			b.WriteString(style.Width(widths[i] + 2).Render(cell))
		}
		c.printf("%s\n", strings.TrimRight(b.String(), " "))
	}
}

func percent(v float64) string {
	return styleNumber.Render(fmt.Sprintf("%.1f%%", v*100))
}
