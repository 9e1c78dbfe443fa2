// ABOUTME: Cart view showing line items with inline quantity editing
// ABOUTME: Emits mutation messages; the app owns the round trips

package cartview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/tui/icons"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
	"github.com/sixthson6/epay-cli/internal/tui/widgets"
)

// QuantityChangedMsg is sent when the user adjusts a line's quantity
type QuantityChangedMsg struct {
	ProductID int64
	Quantity  int
}

// RemoveMsg is sent when the user removes a line
type RemoveMsg struct {
	ProductID int64
}

// ClearMsg is sent when the user empties the cart
type ClearMsg struct{}

// CheckoutMsg is sent when the user starts checkout from the cart
type CheckoutMsg struct{}

// CancelledMsg is sent when the user leaves the cart view
type CancelledMsg struct{}

// CartView displays the server cart
type CartView struct {
	cart   *client.Cart
	cursor int
	width  int
}

// New creates a cart view
func New(cart *client.Cart, width int) *CartView {
	return &CartView{
		cart:  cart,
		width: width,
	}
}

// SetCart replaces the displayed cart and clamps the cursor
func (v *CartView) SetCart(cart *client.Cart) {
	v.cart = cart
	if v.cart == nil || v.cursor >= len(v.cart.Items) {
		v.cursor = 0
	}
}

// SetWidth updates the view width
func (v *CartView) SetWidth(width int) {
	v.width = width
}

// selected returns the line item under the cursor
func (v *CartView) selected() *client.CartItem {
	if v.cart == nil || v.cursor >= len(v.cart.Items) {
		return nil
	}
	item := v.cart.Items[v.cursor]
	return &item
}

// Init implements tea.Model
func (v *CartView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *CartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case tea.KeyMsg:
		itemCount := 0
		if v.cart != nil {
			itemCount = len(v.cart.Items)
		}

		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < itemCount-1 {
				v.cursor++
			}
		case "+", "=":
			if item := v.selected(); item != nil {
				id, qty := item.Product.ID, item.Quantity+1
				return v, func() tea.Msg { return QuantityChangedMsg{ProductID: id, Quantity: qty} }
			}
		case "-":
			if item := v.selected(); item != nil {
				id, qty := item.Product.ID, item.Quantity-1
				return v, func() tea.Msg { return QuantityChangedMsg{ProductID: id, Quantity: qty} }
			}
		case "x", "delete":
			if item := v.selected(); item != nil {
				id := item.Product.ID
				return v, func() tea.Msg { return RemoveMsg{ProductID: id} }
			}
		case "C":
			if itemCount > 0 {
				return v, func() tea.Msg { return ClearMsg{} }
			}
		case "enter", "c":
			if itemCount > 0 {
				return v, func() tea.Msg { return CheckoutMsg{} }
			}
		case "esc", "b":
			return v, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return v, nil
}

// View renders the cart
func (v *CartView) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Your Cart"))
	sb.WriteString("\n")

	if v.cart == nil || len(v.cart.Items) == 0 {
		sb.WriteString(styles.Subtitle.Render("Your cart is empty."))
		return lipgloss.NewStyle().Width(v.width).Render(sb.String())
	}

	itemCount := 0
	for i, item := range v.cart.Items {
		itemCount += item.Quantity
		subtotal := styles.PriceStyle.Render(fmt.Sprintf("$%8.2f", item.Subtotal))
		row := fmt.Sprintf("%-28s x%-3d %s", truncateName(item.Product.Name, 28), item.Quantity, subtotal)
		if i == v.cursor {
			sb.WriteString(styles.SelectedRow.Render("> ") + row)
		} else {
			sb.WriteString("  " + row)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	blocks := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Cart, "Items", itemCount, "in cart", widgets.DefaultSummaryBlockConfig()),
		" ",
		widgets.MoneyBlock(icons.Order, "Total", v.cart.Total, "before tax", widgets.DefaultSummaryBlockConfig()),
	)
	sb.WriteString(blocks)

	return lipgloss.NewStyle().Width(v.width).Render(sb.String())
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
