// ABOUTME: Main storefront menu as a bubbletea model
// ABOUTME: Routes to catalog, cart, checkout, auth, and profile screens

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sixthson6/epay-cli/internal/tui/icons"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
)

// Action is the menu entry the user picked
type Action int

const (
	ActionBrowse Action = iota
	ActionCart
	ActionCheckout
	ActionLogin
	ActionRegister
	ActionProfile
	ActionLogout
	ActionQuit
)

// ActionSelectedMsg is sent when the user confirms a menu entry
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user quits from the menu
type CancelledMsg struct{}

type entry struct {
	label  string
	icon   icons.Icon
	action Action
}

// Menu is the storefront main menu
type Menu struct {
	entries []entry
	cursor  int
	width   int
}

// New creates the menu for the given auth state. Signed-in users see
// cart, checkout, profile, and logout; guests see login and register.
func New(authenticated bool) *Menu {
	entries := []entry{
		{label: "Browse products", icon: icons.Product, action: ActionBrowse},
	}
	if authenticated {
		entries = append(entries,
			entry{label: "View cart", icon: icons.Cart, action: ActionCart},
			entry{label: "Checkout", icon: icons.Card, action: ActionCheckout},
			entry{label: "Profile", icon: icons.User, action: ActionProfile},
			entry{label: "Sign out", icon: icons.Key, action: ActionLogout},
		)
	} else {
		entries = append(entries,
			entry{label: "Sign in", icon: icons.Key, action: ActionLogin},
			entry{label: "Create account", icon: icons.User, action: ActionRegister},
		)
	}
	entries = append(entries, entry{label: "Quit", icon: icons.Quit, action: ActionQuit})

	return &Menu{entries: entries}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			action := m.entries[m.cursor].action
			if action == ActionQuit {
				return m, func() tea.Msg { return CancelledMsg{} }
			}
			return m, func() tea.Msg { return ActionSelectedMsg{Action: action} }
		case "q", "esc":
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Epay Storefront"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%s %s", e.icon.String(), e.label)
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("↑/↓ navigate · enter select · q quit"))
	return sb.String()
}

// Cursor returns the index of the highlighted entry
func (m *Menu) Cursor() int {
	return m.cursor
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionBrowse:
		return "browse"
	case ActionCart:
		return "cart"
	case ActionCheckout:
		return "checkout"
	case ActionLogin:
		return "login"
	case ActionRegister:
		return "register"
	case ActionProfile:
		return "profile"
	case ActionLogout:
		return "logout"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
