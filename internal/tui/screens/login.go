// Package screens implements the application's screens over the shared
// form, notification, and download-gate machinery.
package screens

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearthhq/hearth/internal/api"
	"github.com/hearthhq/hearth/internal/tui"
	"github.com/hearthhq/hearth/internal/tui/components"
	"github.com/hearthhq/hearth/internal/tui/form"
	"github.com/hearthhq/hearth/internal/tui/notify"
)

const signInLabel = "Sign in"

// Login is the sign-in screen: a validated auth form with password
// visibility toggle, busy-state submission, and navigation shortcuts whose
// focus loss must not paint spurious errors.
type Login struct {
	styles *tui.StyleSet
	client *api.Client
	nav    *form.NavCoordinator
	form   *form.Form
	kbd    components.KbdHint

	busy        bool
	submitLabel string
}

type loginResultMsg struct {
	err error
}

// NewLogin creates the sign-in screen.
func NewLogin(styles *tui.StyleSet, client *api.Client) *Login {
	nav := &form.NavCoordinator{}
	f := form.New(nav,
		form.NewField("email", "Email", "you@example.com", form.Required(), form.Email()),
		form.NewSecretField("password", "Password", form.Required(), form.MinLen(8)),
	)

	kbd := components.NewKbdHint(styles.KbdKey, styles.KbdDesc)
	kbd.Bindings = components.SignInHints()

	l := &Login{
		styles:      styles,
		client:      client,
		nav:         nav,
		form:        f,
		kbd:         kbd,
		submitLabel: signInLabel,
	}
	// Navigation shortcuts are wired once per screen lifetime.
	nav.RegisterOnce()
	return l
}

// Title returns the screen title.
func (l *Login) Title() string { return "Sign in" }

// Init focuses the first field.
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update handles input for the sign-in screen.
func (l *Login) Update(msg tea.Msg) (tui.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.busy = false
		l.submitLabel = signInLabel
		if msg.err != nil {
			return l, notify.Show(loginFailureMessage(msg.err), notify.KindError)
		}
		return l, tui.CompleteScreen()

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			return l, l.form.AdvanceFocus()
		case "shift+tab", "up":
			return l, l.form.RetreatFocus()
		case "enter":
			return l, l.submit()
		case "ctrl+t":
			l.form.Field("password").ToggleVisibility()
			return l, nil
		case "ctrl+r":
			return l, l.navigateAway("Registration is handled in the Hearth web app.")
		case "ctrl+f":
			return l, l.navigateAway("Password resets are handled in the Hearth web app.")
		}
	}

	return l, l.form.Update(msg)
}

// navigateAway marks the navigation shortcut before the focus loss is
// processed, so the blur it causes is suppressed exactly once.
func (l *Login) navigateAway(message string) tea.Cmd {
	l.nav.MarkNavActivated()
	blur := l.form.BlurFocused()
	return tea.Batch(blur, notify.Show(message, notify.KindInfo))
}

// submit runs the two-phase submission: validation first, the busy-state
// transition only when it passes. A failed validation therefore leaves the
// submit control enabled with its original label.
func (l *Login) submit() tea.Cmd {
	if _, cmd, ok := l.form.Validate(); !ok {
		l.busy = false
		l.submitLabel = signInLabel
		return cmd
	}

	l.busy = true
	l.submitLabel = form.BusyLabel(form.ActionSignIn)

	client := l.client
	email := l.form.Value("email")
	password := l.form.Value("password")
	return func() tea.Msg {
		err := client.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

// Busy reports whether a submission is in flight.
func (l *Login) Busy() bool { return l.busy }

// SubmitLabel returns the submit control's current label.
func (l *Login) SubmitLabel() string { return l.submitLabel }

// Form exposes the underlying form for tests.
func (l *Login) Form() *form.Form { return l.form }

func loginFailureMessage(err error) string {
	var rej *api.RejectedError
	if errors.As(err, &rej) && rej.RejectionMessage() != "" {
		return rej.RejectionMessage()
	}
	return "Unable to sign in. Please try again."
}

// View renders the sign-in form.
func (l *Login) View(width int) string {
	inputWidth := width - 10
	if inputWidth < 24 {
		inputWidth = 24
	}

	var out string
	out += "  " + l.styles.Title.Render("Sign in to your household") + "\n\n"

	for i, fld := range l.form.Fields() {
		fld.SetWidth(inputWidth - 4)

		label := l.styles.FieldLabel.Render(fld.Label())
		if fld.Secret() && fld.Revealed() {
			label += "  " + l.styles.DimTxt.Render("(visible)")
		}
		out += "  " + label + "\n"

		border := l.styles.InactiveBorder
		if fld.Err() != "" {
			border = l.styles.ErrorBorder
		} else if i == l.form.FocusedIndex() {
			border = l.styles.ActiveBorder
		}
		pad := shakePad(fld.ShakeOffset())
		out += "  " + pad + border.Width(inputWidth).Render(fld.InputView()) + "\n"

		if fld.Err() != "" {
			out += "  " + pad + l.styles.FieldError.Render("✗ "+fld.Err()) + "\n"
		}
		out += "\n"
	}

	button := l.styles.PrimaryButton.Render(l.submitLabel)
	if l.busy {
		button = l.styles.GhostButton.Render(l.submitLabel)
	}
	out += "  " + button + "\n\n"
	out += l.kbd.View() + "\n"
	return out
}

func shakePad(offset int) string {
	if offset > 0 {
		return " "
	}
	return ""
}
