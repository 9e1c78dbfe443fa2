// ABOUTME: Compact bordered blocks for cart and order summary displays
// ABOUTME: Combines icon, value, and caption in a title-in-border panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/tui/icons"
)

// SummaryBlockConfig holds configuration for a summary block
type SummaryBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultSummaryBlockConfig returns sensible defaults
func DefaultSummaryBlockConfig() SummaryBlockConfig {
	return SummaryBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#7C3AED"), // Purple
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// SummaryBlock renders a compact display block with a title in the border
func SummaryBlock(icon icons.Icon, title string, value string, caption string, config SummaryBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	// Inner width accounts for border and padding
	innerWidth := config.Width - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	if len(titleStr) > innerWidth {
		titleStr = titleStr[:innerWidth]
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", maxInt(0, innerWidth-len(titleStr)-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := fmt.Sprintf("│  %-*s│", innerWidth, valueStyle.Render(value))

	captionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	captionLine := fmt.Sprintf("│  %-*s│", innerWidth, captionStyle.Render(truncate(caption, innerWidth)))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(captionLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// MoneyBlock renders a summary block for a dollar amount
func MoneyBlock(icon icons.Icon, title string, amount float64, caption string, config SummaryBlockConfig) string {
	return SummaryBlock(icon, title, fmt.Sprintf("$%.2f", amount), caption, config)
}

// CountBlock renders a simple count block (items in cart, products on page)
func CountBlock(icon icons.Icon, title string, count int, label string, config SummaryBlockConfig) string {
	value := fmt.Sprintf("%d", count)
	return SummaryBlock(icon, title, value, label, config)
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
