// Package components holds small reusable TUI building blocks.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut hint.
type KeyBinding struct {
	Key  string
	Desc string
}

// KbdHint renders a horizontal keyboard shortcut hint bar.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewKbdHint creates a KbdHint with the given styles.
func NewKbdHint(keyStyle, descStyle lipgloss.Style) KbdHint {
	return KbdHint{
		KeyStyle:  keyStyle,
		DescStyle: descStyle,
	}
}

// View renders the keyboard hints.
func (k KbdHint) View() string {
	var parts []string
	for _, b := range k.Bindings {
		part := k.KeyStyle.Render(b.Key) + " " + k.DescStyle.Render(b.Desc)
		parts = append(parts, part)
	}
	return "  " + strings.Join(parts, "    ")
}

// SignInHints returns hints for the sign-in form.
func SignInHints() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Desc: "next field"},
		{Key: "⏎", Desc: "sign in"},
		{Key: "ctrl+t", Desc: "show/hide password"},
		{Key: "ctrl+r", Desc: "register"},
		{Key: "ctrl+f", Desc: "forgot password"},
	}
}

// DocumentHints returns hints for the documents list.
func DocumentHints() []KeyBinding {
	return []KeyBinding{
		{Key: "↑↓", Desc: "navigate"},
		{Key: "⏎", Desc: "download"},
		{Key: "x", Desc: "delete"},
		{Key: "r", Desc: "refresh"},
	}
}

// ChallengeHints returns hints for the password challenge modal.
func ChallengeHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "unlock"},
		{Key: "ctrl+t", Desc: "show/hide"},
		{Key: "esc", Desc: "cancel"},
	}
}

// ConfirmHints returns hints for the confirm dialog.
func ConfirmHints() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Desc: "switch"},
		{Key: "⏎", Desc: "choose"},
		{Key: "esc", Desc: "cancel"},
	}
}
