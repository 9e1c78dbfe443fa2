// ABOUTME: Root bubbletea model for the storefront TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/cart"
	"github.com/sixthson6/epay-cli/internal/checkout"
	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/session"
	"github.com/sixthson6/epay-cli/internal/tui/authform"
	"github.com/sixthson6/epay-cli/internal/tui/cartview"
	"github.com/sixthson6/epay-cli/internal/tui/catalog"
	"github.com/sixthson6/epay-cli/internal/tui/icons"
	"github.com/sixthson6/epay-cli/internal/tui/menu"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
	"github.com/sixthson6/epay-cli/internal/tui/widgets"
	"github.com/sixthson6/epay-cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCatalog
	ScreenProductDetail
	ScreenCart
	ScreenLogin
	ScreenRegister
	ScreenWizard
	ScreenOrderPlaced
	ScreenProfile
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// pageLoadedMsg is sent when a catalog page arrives
type pageLoadedMsg struct {
	page *client.ProductPage
	err  error
}

// productLoadedMsg is sent when a single product arrives
type productLoadedMsg struct {
	product *client.Product
	err     error
}

// cartUpdatedMsg is sent when a cart load or mutation completes
type cartUpdatedMsg struct {
	cart *client.Cart
	err  error
}

// loggedInMsg is sent when a login attempt completes
type loggedInMsg struct {
	user *session.User
	err  error
}

// registeredMsg is sent when a registration attempt completes
type registeredMsg struct {
	confirmation string
	err          error
}

// orderPlacedMsg is sent when checkout completes
type orderPlacedMsg struct {
	order *checkout.Order
	err   error
}

// profileLoadedMsg is sent when the account profile arrives
type profileLoadedMsg struct {
	account *client.Account
	err     error
}

// App is the root model for the TUI
type App struct {
	client  *client.Client
	session *session.Manager
	cart    *cart.Machine

	screen     Screen
	width      int
	height     int
	err        error
	loading    bool
	spin       spinner.Model
	account    *client.Account
	order      *checkout.Order
	product    *client.Product
	pageNo     int
	lastUpdate time.Time

	// Child models
	menu         *menu.Menu
	catalogView  *catalog.Catalog
	cartView     *cartview.CartView
	loginForm    *authform.Login
	registerForm *authform.Register
	wizardScreen *wizard.Wizard
}

// New creates a new TUI application
func New(apiClient *client.Client, sess *session.Manager, machine *cart.Machine) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &App{
		client:  apiClient,
		session: sess,
		cart:    machine,
		screen:  ScreenMenu,
		spin:    sp,
		menu:    menu.New(sess.IsAuthenticated()),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.spin.Tick
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.catalogView != nil {
			a.catalogView.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.cartView != nil {
			a.cartView.SetWidth(a.contentWidth())
		}
		if a.menu != nil {
			a.menu.Update(msg)
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.contentWidth())
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// An error overlay swallows the next key press
		if a.err != nil {
			a.err = nil
			return a, nil
		}

		// Route to current screen
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenCatalog:
			return a.updateCatalog(msg)
		case ScreenProductDetail:
			return a.updateProductDetail(msg)
		case ScreenCart:
			return a.updateCart(msg)
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenRegister:
			return a.updateRegister(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenOrderPlaced:
			return a.updateOrderPlaced(msg)
		case ScreenProfile:
			return a.updateProfile(msg)
		}

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg.Action)

	case menu.CancelledMsg:
		return a, tea.Quit

	case catalog.ProductSelectedMsg:
		a.product = &msg.Product
		a.screen = ScreenProductDetail
		return a, nil

	case catalog.AddToCartMsg:
		if !a.session.IsAuthenticated() {
			a.err = fmt.Errorf("sign in to add items to your cart")
			return a, nil
		}
		return a, a.addToCart(msg.Product.ID, 1)

	case catalog.PageRequestedMsg:
		a.pageNo = msg.PageNo
		return a, a.loadCatalogPage(msg.PageNo)

	case catalog.CancelledMsg:
		a.screen = ScreenMenu
		a.catalogView = nil
		return a, nil

	case cartview.QuantityChangedMsg:
		return a, a.updateQuantity(msg.ProductID, msg.Quantity)

	case cartview.RemoveMsg:
		return a, a.removeFromCart(msg.ProductID)

	case cartview.ClearMsg:
		return a, a.clearCart()

	case cartview.CheckoutMsg:
		return a.startCheckout()

	case cartview.CancelledMsg:
		a.screen = ScreenMenu
		a.cartView = nil
		return a, nil

	case authform.LoginSubmittedMsg:
		a.loading = true
		return a, a.login(msg.Creds)

	case authform.RegisterSubmittedMsg:
		a.loading = true
		return a, a.register(msg.Form)

	case authform.CancelledMsg:
		a.screen = ScreenMenu
		a.loginForm = nil
		a.registerForm = nil
		return a, nil

	case wizard.WizardCompleteMsg:
		a.wizardScreen = nil
		a.loading = true
		return a, a.placeOrder(msg.Shipping, msg.Payment, msg.Billing)

	case wizard.WizardCancelledMsg:
		a.screen = ScreenCart
		a.wizardScreen = nil
		return a, nil

	case pageLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.lastUpdate = time.Now()
		if a.catalogView == nil {
			a.catalogView = catalog.New(msg.page, a.contentWidth(), a.contentHeight())
		} else {
			a.catalogView.SetPage(msg.page)
		}
		a.screen = ScreenCatalog
		return a, nil

	case productLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.product = msg.product
		a.screen = ScreenProductDetail
		return a, nil

	case cartUpdatedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.lastUpdate = time.Now()
		if a.cartView == nil {
			a.cartView = cartview.New(msg.cart, a.contentWidth())
		} else {
			a.cartView.SetCart(msg.cart)
		}
		if a.screen != ScreenCatalog && a.screen != ScreenProductDetail {
			a.screen = ScreenCart
		}
		return a, nil

	case loggedInMsg:
		a.loading = false
		if msg.err != nil {
			if a.loginForm != nil {
				a.loginForm = authform.NewLogin()
				a.loginForm.SetError(msg.err.Error())
				return a, a.loginForm.Init()
			}
			a.err = msg.err
			return a, nil
		}
		a.loginForm = nil
		a.menu = menu.New(true)
		a.screen = ScreenMenu
		return a, a.loadCart()

	case registeredMsg:
		a.loading = false
		if msg.err != nil {
			if a.registerForm != nil {
				a.registerForm = authform.NewRegister()
				a.registerForm.SetError(msg.err.Error())
				return a, a.registerForm.Init()
			}
			a.err = msg.err
			return a, nil
		}
		a.registerForm = nil
		a.loginForm = authform.NewLogin()
		a.screen = ScreenLogin
		return a, a.loginForm.Init()

	case orderPlacedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.screen = ScreenCart
			return a, nil
		}
		a.order = msg.order
		a.cartView = nil
		a.screen = ScreenOrderPlaced
		return a, nil

	case profileLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.account = msg.account
		a.screen = ScreenProfile
		return a, nil

	default:
		// Forward unknown messages to active forms (needed for huh internals)
		switch a.screen {
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenRegister:
			return a.updateRegister(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadCatalogPage(a.pageNo)
	case "c":
		if a.session.IsAuthenticated() {
			return a, a.loadCart()
		}
	}
	if a.catalogView == nil {
		return a, nil
	}
	model, cmd := a.catalogView.Update(msg)
	a.catalogView = model.(*catalog.Catalog)
	return a, cmd
}

func (a *App) updateProductDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "a":
		if a.product != nil {
			if !a.session.IsAuthenticated() {
				a.err = fmt.Errorf("sign in to add items to your cart")
				return a, nil
			}
			return a, a.addToCart(a.product.ID, 1)
		}
	case "b", "esc":
		a.screen = ScreenCatalog
		a.product = nil
		return a, nil
	}
	return a, nil
}

func (a *App) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return a, tea.Quit
	}
	if a.cartView == nil {
		return a, nil
	}
	model, cmd := a.cartView.Update(msg)
	a.cartView = model.(*cartview.CartView)
	return a, cmd
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loginForm == nil {
		return a, nil
	}
	model, cmd := a.loginForm.Update(msg)
	a.loginForm = model.(*authform.Login)
	return a, cmd
}

func (a *App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.registerForm == nil {
		return a, nil
	}
	model, cmd := a.registerForm.Update(msg)
	a.registerForm = model.(*authform.Register)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateOrderPlaced(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	default:
		a.order = nil
		a.screen = ScreenMenu
		return a, nil
	}
}

func (a *App) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.screen = ScreenMenu
		a.account = nil
		return a, nil
	}
	return a, nil
}

func (a *App) handleMenuAction(action menu.Action) (tea.Model, tea.Cmd) {
	switch action {
	case menu.ActionBrowse:
		a.loading = true
		a.pageNo = 0
		return a, a.loadCatalogPage(0)

	case menu.ActionCart:
		a.loading = true
		return a, a.loadCart()

	case menu.ActionCheckout:
		return a.startCheckout()

	case menu.ActionLogin:
		a.loginForm = authform.NewLogin()
		a.screen = ScreenLogin
		return a, a.loginForm.Init()

	case menu.ActionRegister:
		a.registerForm = authform.NewRegister()
		a.screen = ScreenRegister
		return a, a.registerForm.Init()

	case menu.ActionProfile:
		a.loading = true
		return a, a.loadProfile()

	case menu.ActionLogout:
		a.session.Logout()
		a.cart.Reset()
		a.cartView = nil
		a.menu = menu.New(false)
		a.screen = ScreenMenu
		return a, nil
	}

	return a, nil
}

func (a *App) startCheckout() (tea.Model, tea.Cmd) {
	if !a.session.IsAuthenticated() {
		a.err = fmt.Errorf("sign in to check out")
		return a, nil
	}
	if a.cart.ItemCount() == 0 {
		a.err = fmt.Errorf("your cart is empty")
		return a, nil
	}

	processor := checkout.NewProcessor(a.cart, nil)
	a.wizardScreen = wizard.New(processor.Price())
	a.wizardScreen.SetWidth(a.contentWidth())
	a.screen = ScreenWizard
	return a, a.wizardScreen.Init()
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case a.err != nil:
		content = a.viewError()
	case a.loading:
		content = a.viewLoading()
	default:
		switch a.screen {
		case ScreenMenu:
			content = a.viewMenu()
		case ScreenCatalog:
			content = a.viewCatalog()
		case ScreenProductDetail:
			content = a.viewProductDetail()
		case ScreenCart:
			content = a.viewCart()
		case ScreenLogin:
			content = a.viewLogin()
		case ScreenRegister:
			content = a.viewRegister()
		case ScreenWizard:
			content = a.viewWizard()
		case ScreenOrderPlaced:
			content = a.viewOrderPlaced()
		case ScreenProfile:
			content = a.viewProfile()
		default:
			content = a.viewMenu()
		}
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewError() string {
	return styles.StatusCritical.Render("Error: "+a.err.Error()) +
		"\n\n" + styles.Help.Render("press any key to continue")
}

func (a *App) viewLoading() string {
	return a.spin.View() + " Loading..."
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return a.menu.View()
	}
	return ""
}

func (a *App) viewCatalog() string {
	if a.catalogView != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.catalogView.View())
	}
	return ""
}

func (a *App) viewProductDetail() string {
	if a.product == nil {
		return ""
	}
	p := a.product

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.Name))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(p.CategoryName))
	sb.WriteString("\n\n")
	sb.WriteString(p.Description)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Price: %s\n", styles.PriceStyle.Render(fmt.Sprintf("$%.2f", p.Price))))
	sb.WriteString(fmt.Sprintf("Availability: %s\n", widgets.StockBadge(p.StockQuantity)))
	if p.StockQuantity > 0 {
		sb.WriteString(fmt.Sprintf("Stock: %s %d\n", styles.StockBar(p.StockQuantity, 50, 20), p.StockQuantity))
	}

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewCart() string {
	if a.cartView != nil {
		return styles.ActivePanel.Width(a.contentWidth()).Render(a.cartView.View())
	}
	return ""
}

func (a *App) viewLogin() string {
	if a.loginForm != nil {
		return a.loginForm.View()
	}
	return ""
}

func (a *App) viewRegister() string {
	if a.registerForm != nil {
		return a.registerForm.View()
	}
	return ""
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewOrderPlaced() string {
	if a.order == nil {
		return ""
	}
	o := a.order

	var sb strings.Builder
	sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Order placed"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Reference: %s\n", styles.ValueStyle.Render(o.Reference)))
	sb.WriteString(fmt.Sprintf("Items:     %d\n\n", o.Items))
	shippingCost := fmt.Sprintf("$%.2f", o.Summary.Shipping)
	if o.Summary.Shipping == 0 {
		shippingCost = "free"
	}
	sb.WriteString(fmt.Sprintf("Subtotal:  $%.2f\n", o.Summary.Subtotal))
	sb.WriteString(fmt.Sprintf("Tax:       $%.2f\n", o.Summary.Tax))
	sb.WriteString(fmt.Sprintf("Shipping:  %s\n", shippingCost))
	sb.WriteString(fmt.Sprintf("Total:     %s\n", styles.PriceStyle.Render(fmt.Sprintf("$%.2f", o.Summary.Total))))
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("press any key to return to the menu"))

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewProfile() string {
	if a.account == nil {
		return ""
	}
	acct := a.account

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Profile"))
	sb.WriteString("\n")
	name := strings.TrimSpace(acct.FirstName + " " + acct.LastName)
	sb.WriteString(fmt.Sprintf("Username: %s\n", styles.ValueStyle.Render(acct.Username)))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", acct.Email))
	if len(acct.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("Roles:    %s\n", strings.Join(acct.Roles, ", ")))
	}

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

// contentWidth calculates the width for the content pane
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - panelPadding
	}
	return a.width - panelPadding
}

// contentHeight calculates the height available for content
func (a *App) contentHeight() int {
	// Header, panel borders, and footer take 8 lines
	return a.height - 8
}

// renderHeader creates the header bar with app branding and session badge
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Epay Storefront"))

	username := ""
	if user := a.session.User(); user != nil {
		username = user.Username
	}
	rightText := widgets.AuthBadge(username) + " "

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	header := "╭─" + leftText + fill + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	// Build keyboard shortcuts based on current screen
	var shortcuts []string
	switch a.screen {
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenCatalog:
		shortcuts = []string{"↑↓ Navigate", "Enter Details", "a Add", "n/p Page", "b Back", "q Quit"}
	case ScreenProductDetail:
		shortcuts = []string{"a Add to cart", "b Back", "q Quit"}
	case ScreenCart:
		shortcuts = []string{"+/- Quantity", "x Remove", "Enter Checkout", "b Back", "q Quit"}
	case ScreenLogin, ScreenRegister, ScreenWizard:
		shortcuts = []string{"Tab Next field", "Enter Confirm", "Esc Cancel"}
	case ScreenOrderPlaced:
		shortcuts = []string{"Any key Menu", "q Quit"}
	case ScreenProfile:
		shortcuts = []string{"b Back", "q Quit"}
	}

	// Build styled shortcuts
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	// Right side status (last update time)
	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenCatalog || a.screen == ScreenCart) {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	// Calculate widths
	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	fill := strings.Repeat("─", fillWidth)

	footer := "╰─" + leftText + fill + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// loadCatalogPage creates a command to fetch one catalog page
func (a *App) loadCatalogPage(pageNo int) tea.Cmd {
	return func() tea.Msg {
		page, err := a.client.Products(context.Background(), client.ProductQuery{PageNo: pageNo})
		return pageLoadedMsg{page: page, err: err}
	}
}

// loadCart creates a command to fetch the server cart
func (a *App) loadCart() tea.Cmd {
	return func() tea.Msg {
		if err := a.cart.Load(context.Background()); err != nil {
			return cartUpdatedMsg{err: err}
		}
		return cartUpdatedMsg{cart: a.cart.Cart()}
	}
}

// addToCart creates a command to add a product
func (a *App) addToCart(productID int64, quantity int) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.cart.Add(context.Background(), productID, quantity)
		return cartUpdatedMsg{cart: updated, err: err}
	}
}

// updateQuantity creates a command to set a line quantity
func (a *App) updateQuantity(productID int64, quantity int) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.cart.Update(context.Background(), productID, quantity)
		return cartUpdatedMsg{cart: updated, err: err}
	}
}

// removeFromCart creates a command to remove a line
func (a *App) removeFromCart(productID int64) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.cart.Remove(context.Background(), productID)
		return cartUpdatedMsg{cart: updated, err: err}
	}
}

// clearCart creates a command to empty the cart
func (a *App) clearCart() tea.Cmd {
	return func() tea.Msg {
		updated, err := a.cart.Clear(context.Background())
		return cartUpdatedMsg{cart: updated, err: err}
	}
}

// login creates a command to authenticate
func (a *App) login(creds client.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Login(context.Background(), creds)
		return loggedInMsg{user: user, err: err}
	}
}

// register creates a command to create an account
func (a *App) register(form client.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		confirmation, err := a.session.Register(context.Background(), form)
		return registeredMsg{confirmation: confirmation, err: err}
	}
}

// placeOrder creates a command to run checkout
func (a *App) placeOrder(shipping checkout.ShippingInfo, payment checkout.PaymentInfo, billing *checkout.BillingInfo) tea.Cmd {
	return func() tea.Msg {
		processor := checkout.NewProcessor(a.cart, nil)
		order, err := processor.PlaceOrder(context.Background(), shipping, payment, billing)
		return orderPlacedMsg{order: order, err: err}
	}
}

// loadProfile creates a command to fetch the account profile
func (a *App) loadProfile() tea.Cmd {
	return func() tea.Msg {
		account, err := a.client.Me(context.Background())
		return profileLoadedMsg{account: account, err: err}
	}
}

// Run starts the TUI
func Run(apiClient *client.Client, sess *session.Manager, machine *cart.Machine) error {
	app := New(apiClient, sess, machine)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
