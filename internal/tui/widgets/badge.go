// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for stock, auth, and order states

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StockBadge renders the availability badge for a product
func StockBadge(stock int) string {
	if stock <= 0 {
		return Badge("OUT OF STOCK", StatusCritical)
	}
	if stock <= 5 {
		return Badge(fmt.Sprintf("LOW STOCK (%d)", stock), StatusWarning)
	}
	return Badge("IN STOCK", StatusOK)
}

// StockLevel returns the status level for a stock quantity
func StockLevel(stock int) StatusLevel {
	if stock <= 0 {
		return StatusCritical
	}
	if stock <= 5 {
		return StatusWarning
	}
	return StatusOK
}

// AuthBadge renders the session indicator for the header
func AuthBadge(username string) string {
	if username == "" {
		return Badge("GUEST", StatusNeutral)
	}
	return Badge(username, StatusInfo)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}
