// Package notify owns the page-level notification surfaces: the toast stack
// and the confirm dialog. Both are single instances shared by every screen;
// all mutation goes through their methods.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Kind selects toast styling. Unknown values render as KindInfo.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

const (
	// DefaultTTL is how long a toast stays up when the caller does not care.
	DefaultTTL = 5 * time.Second
	// FadeDuration is the leaving transition before a toast is removed, so
	// removal is observably asynchronous.
	FadeDuration = 300 * time.Millisecond
)

// Toast is one transient notification.
type Toast struct {
	ID      string
	Message string
	Kind    Kind
	TTL     time.Duration
	Leaving bool
}

// ShowMsg asks the application root to push a toast.
type ShowMsg struct {
	Message string
	Kind    Kind
	TTL     time.Duration
}

// Show returns a command that surfaces a toast with the default lifetime.
func Show(message string, kind Kind) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Message: message, Kind: kind, TTL: DefaultTTL} }
}

// ShowSticky returns a command for a toast that stays until dismissed.
func ShowSticky(message string, kind Kind) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Message: message, Kind: kind, TTL: 0} }
}

// expireMsg fires when a toast's lifetime ends.
type expireMsg struct{ id string }

// removeMsg fires when a leaving toast's fade completes.
type removeMsg struct{ id string }

// Center is the toast stack. Insertion order is render order.
type Center struct {
	toasts []Toast
}

// Push appends a toast and returns its id plus the expiry command.
// A ttl of zero means the toast persists until dismissed.
func (c *Center) Push(message string, kind Kind, ttl time.Duration) (string, tea.Cmd) {
	if kind < KindInfo || kind > KindError {
		kind = KindInfo
	}
	t := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Kind:    kind,
		TTL:     ttl,
	}
	c.toasts = append(c.toasts, t)

	if ttl <= 0 {
		return t.ID, nil
	}
	id := t.ID
	return t.ID, tea.Tick(ttl, func(time.Time) tea.Msg { return expireMsg{id: id} })
}

// Dismiss starts the fade-out for a toast. Unknown or already-leaving ids
// are no-ops, so dismissing twice is safe.
func (c *Center) Dismiss(id string) tea.Cmd {
	for i := range c.toasts {
		if c.toasts[i].ID != id || c.toasts[i].Leaving {
			continue
		}
		c.toasts[i].Leaving = true
		return tea.Tick(FadeDuration, func(time.Time) tea.Msg { return removeMsg{id: id} })
	}
	return nil
}

// Update advances toast lifecycle messages. Other messages are ignored.
func (c *Center) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case expireMsg:
		return c.Dismiss(msg.id)
	case removeMsg:
		c.remove(msg.id)
	}
	return nil
}

func (c *Center) remove(id string) {
	for i := range c.toasts {
		if c.toasts[i].ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns the visible stack in insertion order.
func (c *Center) Toasts() []Toast { return c.toasts }

// Len reports how many toasts are on screen, leaving ones included.
func (c *Center) Len() int { return len(c.toasts) }
