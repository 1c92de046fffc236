package notify

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Variant selects the confirm control's styling.
type Variant int

const (
	VariantPrimary Variant = iota
	VariantDanger
)

// ConfirmRequest describes one confirmation dialog.
type ConfirmRequest struct {
	ID           string
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Variant      Variant
}

// RequestMsg asks the application root to open a confirm dialog.
type RequestMsg struct {
	Req ConfirmRequest
}

// RequestConfirm returns a command that opens a confirm dialog.
func RequestConfirm(req ConfirmRequest) tea.Cmd {
	return func() tea.Msg { return RequestMsg{Req: req} }
}

// ResolvedMsg delivers a dialog's outcome. Exactly one is emitted per open
// request: Confirmed is true for the confirm control, false for cancel or
// esc.
type ResolvedMsg struct {
	ID        string
	Confirmed bool
}

// Confirm is the single-slot confirmation dialog. Opening while a dialog is
// visible replaces its content; dialogs never stack.
type Confirm struct {
	open         bool
	resolved     bool
	req          ConfirmRequest
	focusConfirm bool
}

// Open shows the dialog for req, assigning an id when the caller left it
// empty. A previously open, unresolved dialog is resolved as cancelled
// before being replaced, so its caller still observes exactly one outcome.
// Focus lands on the confirm control.
func (c *Confirm) Open(req ConfirmRequest) (string, tea.Cmd) {
	var replaced tea.Cmd
	if c.open && !c.resolved {
		prev := c.req.ID
		replaced = func() tea.Msg { return ResolvedMsg{ID: prev, Confirmed: false} }
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.ConfirmLabel == "" {
		req.ConfirmLabel = "Confirm"
	}
	if req.CancelLabel == "" {
		req.CancelLabel = "Cancel"
	}

	c.req = req
	c.open = true
	c.resolved = false
	c.focusConfirm = true
	return req.ID, replaced
}

// Update handles keys while the dialog is open. It returns a command
// carrying the ResolvedMsg when the user decides.
func (c *Confirm) Update(msg tea.Msg) tea.Cmd {
	if !c.open {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "tab", "left", "right":
		c.focusConfirm = !c.focusConfirm
	case "enter":
		return c.resolve(c.focusConfirm)
	case "y":
		return c.resolve(true)
	case "n":
		return c.resolve(false)
	case "esc":
		return c.resolve(false)
	}
	return nil
}

func (c *Confirm) resolve(confirmed bool) tea.Cmd {
	if c.resolved {
		return nil
	}
	c.resolved = true
	c.open = false
	id := c.req.ID
	return func() tea.Msg { return ResolvedMsg{ID: id, Confirmed: confirmed} }
}

// Close force-hides the dialog identified by id without emitting an
// outcome. Unknown ids and repeated calls are no-ops.
func (c *Confirm) Close(id string) {
	if !c.open || c.req.ID != id {
		return
	}
	c.open = false
	c.resolved = true
}

// IsOpen reports whether a dialog is visible.
func (c *Confirm) IsOpen() bool { return c.open }

// Request returns the dialog currently shown.
func (c *Confirm) Request() ConfirmRequest { return c.req }

// FocusConfirm reports whether the confirm control has focus.
func (c *Confirm) FocusConfirm() bool { return c.focusConfirm }
