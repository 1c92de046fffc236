package form

// Action is the semantic kind of a form submission, used to pick the
// busy-state progress label. Keying on an explicit action rather than the
// button's current text keeps the mapping stable.
type Action string

const (
	ActionSignIn Action = "sign-in"
	ActionCreate Action = "create"
	ActionReset  Action = "reset"
)

var busyLabels = map[Action]string{
	ActionSignIn: "Signing in...",
	ActionCreate: "Creating...",
	ActionReset:  "Resetting...",
}

// BusyLabel returns the progress label for an action, defaulting to
// "Processing..." for unknown actions.
func BusyLabel(a Action) string {
	if label, ok := busyLabels[a]; ok {
		return label
	}
	return "Processing..."
}
