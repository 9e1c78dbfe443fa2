// ABOUTME: Catalog component displaying a page of products
// ABOUTME: Handles row navigation, paging keys, and add-to-cart selection

package catalog

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
	"github.com/sixthson6/epay-cli/internal/tui/widgets"
)

// ProductSelectedMsg is sent when the user opens a product row
type ProductSelectedMsg struct {
	Product client.Product
}

// AddToCartMsg is sent when the user presses the add key on a row
type AddToCartMsg struct {
	Product client.Product
}

// PageRequestedMsg is sent when the user pages forward or back
type PageRequestedMsg struct {
	PageNo int
}

// CancelledMsg is sent when the user leaves the catalog
type CancelledMsg struct{}

// Catalog displays one page of the product catalog
type Catalog struct {
	page   *client.ProductPage
	cursor int
	width  int
	height int
}

// New creates a catalog view for a product page
func New(page *client.ProductPage, width, height int) *Catalog {
	return &Catalog{
		page:   page,
		width:  width,
		height: height,
	}
}

// SetPage replaces the displayed page and clamps the cursor
func (c *Catalog) SetPage(page *client.ProductPage) {
	c.page = page
	if c.page == nil || c.cursor >= len(c.page.Content) {
		c.cursor = 0
	}
}

// SetSize updates the catalog dimensions
func (c *Catalog) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Selected returns the product under the cursor, or nil for an empty page
func (c *Catalog) Selected() *client.Product {
	if c.page == nil || c.cursor >= len(c.page.Content) {
		return nil
	}
	p := c.page.Content[c.cursor]
	return &p
}

// Init implements tea.Model
func (c *Catalog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		return c, nil

	case tea.KeyMsg:
		rowCount := 0
		if c.page != nil {
			rowCount = len(c.page.Content)
		}

		switch msg.String() {
		case "up", "k":
			if c.cursor > 0 {
				c.cursor--
			}
		case "down", "j":
			if c.cursor < rowCount-1 {
				c.cursor++
			}
		case "enter":
			if p := c.Selected(); p != nil {
				product := *p
				return c, func() tea.Msg { return ProductSelectedMsg{Product: product} }
			}
		case "a":
			if p := c.Selected(); p != nil {
				product := *p
				return c, func() tea.Msg { return AddToCartMsg{Product: product} }
			}
		case "n", "right":
			if c.page != nil && !c.page.Last {
				next := c.page.PageNo + 1
				return c, func() tea.Msg { return PageRequestedMsg{PageNo: next} }
			}
		case "p", "left":
			if c.page != nil && c.page.PageNo > 0 {
				prev := c.page.PageNo - 1
				return c, func() tea.Msg { return PageRequestedMsg{PageNo: prev} }
			}
		case "esc", "b":
			return c, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return c, nil
}

// View renders the catalog page
func (c *Catalog) View() string {
	if c.page == nil {
		return styles.Subtitle.Render("Loading products...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Products"))
	sb.WriteString("\n")

	if len(c.page.Content) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products found."))
		return lipgloss.NewStyle().Width(c.width).Render(sb.String())
	}

	for i, p := range c.page.Content {
		price := styles.PriceStyle.Render(fmt.Sprintf("$%8.2f", p.Price))
		row := fmt.Sprintf("%-30s %s  %s", truncateName(p.Name, 30), price, widgets.StockBadge(p.StockQuantity))
		if i == c.cursor {
			sb.WriteString(styles.SelectedRow.Render("> ") + row)
		} else {
			sb.WriteString("  " + row)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Page %d of %d · %d products",
		c.page.PageNo+1, c.page.TotalPages, c.page.TotalElements)))

	return lipgloss.NewStyle().Width(c.width).Render(sb.String())
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
