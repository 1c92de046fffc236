package form

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	shakeSteps    = 6
	shakeInterval = 80 * time.Millisecond
)

// ShakeTickMsg advances a field's error shake animation.
type ShakeTickMsg struct {
	Name string
}

// Field is one user-editable input bound to a set of rules. Secret fields
// are masked and support a visibility toggle.
type Field struct {
	name   string
	label  string
	input  textinput.Model
	rules  []Rule
	secret bool

	revealed bool
	errMsg   string
	shaking  int
}

// NewField creates a plain text field.
func NewField(name, label, placeholder string, rules ...Rule) *Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return &Field{name: name, label: label, input: ti, rules: rules}
}

// NewSecretField creates a masked field with a visibility toggle.
func NewSecretField(name, label string, rules ...Rule) *Field {
	f := NewField(name, label, "", rules...)
	f.secret = true
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

// Name returns the field's identifier.
func (f *Field) Name() string { return f.name }

// Label returns the field's display label.
func (f *Field) Label() string { return f.label }

// Value returns the field's current content.
func (f *Field) Value() string { return f.input.Value() }

// SetValue replaces the field's content.
func (f *Field) SetValue(v string) { f.input.SetValue(v) }

// Err returns the displayed error annotation, "" when none.
func (f *Field) Err() string { return f.errMsg }

// Focused reports whether the field has input focus.
func (f *Field) Focused() bool { return f.input.Focused() }

// Secret reports whether the field is masked.
func (f *Field) Secret() bool { return f.secret }

// Revealed reports whether a secret field currently shows its content.
func (f *Field) Revealed() bool { return f.revealed }

// Focus gives the field input focus.
func (f *Field) Focus() tea.Cmd {
	f.input.Focus()
	return textinput.Blink
}

// Blur removes input focus without validating; validation on blur is the
// form's decision.
func (f *Field) Blur() { f.input.Blur() }

// Update feeds an input message to the field. Editing clears any displayed
// error immediately; re-validation waits for the next blur or submit.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		f.errMsg = ""
		f.shaking = 0
	}
	return cmd
}

// Validate runs the field's rules and returns the first failure message.
// It does not touch the displayed annotation; callers decide rendering.
func (f *Field) Validate() string {
	for _, r := range f.rules {
		if msg := r.Check(f.input.Value()); msg != "" {
			return msg
		}
	}
	return ""
}

// setError shows an error annotation, restarting the shake animation. The
// animation is purely cosmetic; validation state never waits on it.
func (f *Field) setError(msg string) tea.Cmd {
	f.errMsg = msg
	f.shaking = shakeSteps
	name := f.name
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg { return ShakeTickMsg{Name: name} })
}

// clearAnnotation removes error state and any running shake.
func (f *Field) clearAnnotation() {
	f.errMsg = ""
	f.shaking = 0
}

// advanceShake steps the animation and reschedules while frames remain.
func (f *Field) advanceShake() tea.Cmd {
	if f.shaking <= 0 {
		return nil
	}
	f.shaking--
	if f.shaking == 0 {
		return nil
	}
	name := f.name
	return tea.Tick(shakeInterval, func(time.Time) tea.Msg { return ShakeTickMsg{Name: name} })
}

// ShakeOffset returns the current horizontal render offset.
func (f *Field) ShakeOffset() int { return f.shaking % 2 }

// ToggleVisibility flips a secret field between masked and plain display.
// No-op on plain fields.
func (f *Field) ToggleVisibility() {
	if !f.secret {
		return
	}
	f.revealed = !f.revealed
	if f.revealed {
		f.input.EchoMode = textinput.EchoNormal
	} else {
		f.input.EchoMode = textinput.EchoPassword
	}
}

// Reset clears content, annotation, and visibility state.
func (f *Field) Reset() {
	f.input.SetValue("")
	f.clearAnnotation()
	if f.secret && f.revealed {
		f.ToggleVisibility()
	}
}

// InputView renders the underlying text input.
func (f *Field) InputView() string { return f.input.View() }

// SetWidth sets the input's render width.
func (f *Field) SetWidth(w int) { f.input.Width = w }
