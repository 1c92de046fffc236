package form

// NavCoordinator owns the one-shot blur suppression used when the user
// activates a navigation shortcut instead of submitting: the focus loss
// that follows must not paint a "required" error on the field being left.
//
// The flag is consumed (read-and-reset) by exactly the next blur and never
// leaks into a later, unrelated validation pass.
type NavCoordinator struct {
	registered bool
	suppress   bool
	clearFns   []func()
}

// RegisterOnce returns true on the first call only. Screens use it to
// guard against installing their navigation handlers twice.
func (n *NavCoordinator) RegisterOnce() bool {
	if n.registered {
		return false
	}
	n.registered = true
	return true
}

// Attach registers a form's annotation-clearing hook. Every attached form
// is cleared when a navigation shortcut fires, not just the one the
// shortcut lives in.
func (n *NavCoordinator) Attach(clear func()) {
	n.clearFns = append(n.clearFns, clear)
}

// MarkNavActivated records that a navigation shortcut fired before the
// resulting blur is processed, and clears displayed annotations across all
// attached forms.
func (n *NavCoordinator) MarkNavActivated() {
	n.suppress = true
	for _, clear := range n.clearFns {
		clear()
	}
}

// ConsumeSuppression atomically reads and resets the suppression flag.
func (n *NavCoordinator) ConsumeSuppression() bool {
	s := n.suppress
	n.suppress = false
	return s
}

// SuppressionPending reports the flag without consuming it.
func (n *NavCoordinator) SuppressionPending() bool { return n.suppress }
