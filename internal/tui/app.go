// Package tui hosts the application shell: the screen sequence, the shared
// notification surfaces, and theming.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hearthhq/hearth/internal/tui/notify"
)

// App is the top-level Bubble Tea model. It owns the singleton toast stack
// and confirm dialog; screens reach them through notify commands so no two
// components mutate the shared regions directly.
type App struct {
	styles  *StyleSet
	screens []Screen
	current int
	width   int
	height  int
	version string
	done    bool

	toasts  notify.Center
	confirm notify.Confirm
}

// NewApp creates the application over an ordered screen sequence.
func NewApp(theme TermTheme, screens []Screen, version string) *App {
	return &App{
		styles:  NewStyleSet(theme),
		screens: screens,
		width:   100,
		height:  30,
		version: version,
	}
}

// Styles exposes the computed style set to screen constructors.
func (a *App) Styles() *StyleSet { return a.styles }

// Init starts the first screen.
func (a *App) Init() tea.Cmd {
	if len(a.screens) > 0 {
		return a.screens[0].Init()
	}
	return nil
}

// Update routes messages: lifecycle first, then the confirm dialog while it
// is open (it is modal), then the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.done = true
			return a, tea.Quit
		}

	case notify.ShowMsg:
		_, cmd := a.toasts.Push(msg.Message, msg.Kind, msg.TTL)
		return a, cmd

	case notify.RequestMsg:
		_, replaced := a.confirm.Open(msg.Req)
		return a, replaced

	case ScreenCompleteMsg:
		a.current++
		if a.current >= len(a.screens) {
			a.done = true
			return a, tea.Quit
		}
		return a, a.screens[a.current].Init()

	case ScreenBackMsg:
		if a.current > 0 {
			a.current--
			return a, a.screens[a.current].Init()
		}
		return a, nil
	}

	// Toast lifecycle ticks are cheap and never consume other messages.
	toastCmd := a.toasts.Update(msg)

	// The confirm dialog swallows keys while open; its resolution still
	// flows to the screen so callers observe the outcome.
	if a.confirm.IsOpen() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			cmd := a.confirm.Update(msg)
			return a, tea.Batch(toastCmd, cmd)
		}
	}

	if a.current < len(a.screens) {
		updated, cmd := a.screens[a.current].Update(msg)
		a.screens[a.current] = updated
		return a, tea.Batch(toastCmd, cmd)
	}
	return a, toastCmd
}

// View renders the banner, active screen, confirm dialog, and toast stack.
func (a *App) View() string {
	if a.done {
		return ""
	}

	var out string
	out += "\n" + RenderBanner(a.styles, a.version, a.width)

	if a.current < len(a.screens) {
		out += a.screens[a.current].View(a.width)
	}

	if a.confirm.IsOpen() {
		out += "\n" + RenderConfirm(a.styles, &a.confirm, a.width)
	}

	if a.toasts.Len() > 0 {
		out += "\n" + RenderToasts(a.styles, a.toasts.Toasts(), a.width)
	}

	return out
}

// RenderToasts renders the toast stack, newest last, right-aligned.
func RenderToasts(styles *StyleSet, toasts []notify.Toast, width int) string {
	var rendered []string
	for _, t := range toasts {
		style := styles.ToastInfo
		prefix := "ℹ"
		switch t.Kind {
		case notify.KindSuccess:
			style, prefix = styles.ToastSuccess, "✓"
		case notify.KindWarning:
			style, prefix = styles.ToastWarning, "!"
		case notify.KindError:
			style, prefix = styles.ToastError, "✗"
		}
		if t.Leaving {
			style = styles.ToastLeaving
		}
		box := style.Render(prefix + " " + t.Message)
		rendered = append(rendered, lipgloss.PlaceHorizontal(width-2, lipgloss.Right, box))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// RenderConfirm renders the confirm dialog box.
func RenderConfirm(styles *StyleSet, c *notify.Confirm, width int) string {
	req := c.Request()

	confirmStyle := styles.PrimaryButton
	if req.Variant == notify.VariantDanger {
		confirmStyle = styles.DangerButton
	}
	cancelStyle := styles.GhostButton
	if !c.FocusConfirm() {
		cancelStyle = cancelStyle.Underline(true)
	} else {
		confirmStyle = confirmStyle.Underline(true)
	}

	buttons := confirmStyle.Render(req.ConfirmLabel) + "  " + cancelStyle.Render(req.CancelLabel)
	body := styles.ModalTitle.Render(req.Title) + "\n\n" +
		styles.SecondaryTxt.Render(req.Message) + "\n\n" +
		buttons

	box := styles.ModalBox.Render(body)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
