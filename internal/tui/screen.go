package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is one full view of the application (sign-in, documents).
type Screen interface {
	// Title returns the screen's display title.
	Title() string
	// Init returns the initial command for this screen.
	Init() tea.Cmd
	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the screen content for the given width.
	View(width int) string
}

// ScreenCompleteMsg is emitted by a screen when it finishes and the next
// screen should take over.
type ScreenCompleteMsg struct{}

// ScreenBackMsg is emitted by a screen to return to the previous one.
type ScreenBackMsg struct{}

// CompleteScreen returns a command emitting ScreenCompleteMsg.
func CompleteScreen() tea.Cmd {
	return func() tea.Msg { return ScreenCompleteMsg{} }
}
