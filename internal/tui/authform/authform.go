// ABOUTME: Login and registration forms as bubbletea models
// ABOUTME: Wraps huh forms and emits submit/cancel messages to the app

package authform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
)

// LoginSubmittedMsg is sent when the login form completes
type LoginSubmittedMsg struct {
	Creds client.LoginRequest
}

// RegisterSubmittedMsg is sent when the registration form completes
type RegisterSubmittedMsg struct {
	Form client.RegisterRequest
}

// CancelledMsg is sent when the user backs out of a form
type CancelledMsg struct{}

// Login is the sign-in form
type Login struct {
	form       *huh.Form
	identifier string
	password   string
	errText    string
}

// NewLogin creates the sign-in form
func NewLogin() *Login {
	l := &Login{}
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email or username").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&l.identifier).
				Validate(validateRequired("email or username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&l.password).
				Validate(validateRequired("password")),
		).Title("Sign In").
			Description("Enter your Epay credentials"),
	).WithTheme(styles.FormTheme())
	return l
}

// SetError shows a submit failure above the form
func (l *Login) SetError(text string) {
	l.errText = text
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		creds := client.LoginRequest{Password: l.password}
		// An identifier with an @ is treated as an email, otherwise a username
		if strings.Contains(l.identifier, "@") {
			creds.Email = l.identifier
		} else {
			creds.Username = l.identifier
		}
		return l, func() tea.Msg { return LoginSubmittedMsg{Creds: creds} }
	}

	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.errText != "" {
		sb.WriteString(styles.StatusCritical.Render(l.errText))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	return sb.String()
}

// Register is the account creation form
type Register struct {
	form      *huh.Form
	firstName string
	lastName  string
	email     string
	username  string
	password  string
	errText   string
}

// NewRegister creates the registration form
func NewRegister() *Register {
	r := &Register{}
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				CharLimit(64).
				Value(&r.firstName),
			huh.NewInput().
				Title("Last name").
				CharLimit(64).
				Value(&r.lastName),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&r.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Username").
				CharLimit(64).
				Value(&r.username).
				Validate(validateRequired("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&r.password).
				Validate(validatePassword),
		).Title("Create Account").
			Description("Register a new Epay account"),
	).WithTheme(styles.FormTheme())
	return r
}

// SetError shows a submit failure above the form
func (r *Register) SetError(text string) {
	r.errText = text
}

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return r, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		out := client.RegisterRequest{
			FirstName: r.firstName,
			LastName:  r.lastName,
			Email:     r.email,
			Username:  r.username,
			Password:  r.password,
		}
		return r, func() tea.Msg { return RegisterSubmittedMsg{Form: out} }
	}

	return r, cmd
}

// View implements tea.Model
func (r *Register) View() string {
	var sb strings.Builder
	if r.errText != "" {
		sb.WriteString(styles.StatusCritical.Render(r.errText))
		sb.WriteString("\n\n")
	}
	sb.WriteString(r.form.View())
	return sb.String()
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
