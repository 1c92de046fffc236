// Package form provides real-time field validation for TUI forms: error
// annotations render on blur, clear on input, and gate submission. A
// NavCoordinator suppresses the one blur caused by activating a navigation
// shortcut so leaving a form never paints spurious errors.
package form

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Form binds an ordered set of fields for the lifetime of a screen.
type Form struct {
	fields []*Field
	focus  int
	nav    *NavCoordinator
}

// New creates a form over the given fields. When nav is non-nil the form
// registers its annotation-clearing hook with it.
func New(nav *NavCoordinator, fields ...*Field) *Form {
	f := &Form{fields: fields, nav: nav}
	if nav != nil {
		nav.Attach(f.ClearAnnotations)
	}
	return f
}

// Init focuses the first field.
func (f *Form) Init() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = 0
	return f.fields[0].Focus()
}

// Update routes an input message to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if shake, ok := msg.(ShakeTickMsg); ok {
		if fld := f.Field(shake.Name); fld != nil {
			return fld.advanceShake()
		}
		return nil
	}
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus].Update(msg)
}

// AdvanceFocus blurs the focused field (validating it, unless suppressed)
// and focuses the next one, wrapping at the end.
func (f *Form) AdvanceFocus() tea.Cmd {
	return f.moveFocus(1)
}

// RetreatFocus blurs the focused field and focuses the previous one.
func (f *Form) RetreatFocus() tea.Cmd {
	return f.moveFocus(-1)
}

func (f *Form) moveFocus(dir int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	shake := f.blur(f.focus)
	f.focus = (f.focus + dir + len(f.fields)) % len(f.fields)
	focus := f.fields[f.focus].Focus()
	if shake != nil {
		return tea.Batch(shake, focus)
	}
	return focus
}

// BlurFocused blurs the focused field without moving focus elsewhere,
// applying the usual blur validation (or its suppression). Screens call it
// when focus leaves the form entirely, e.g. for a navigation shortcut.
func (f *Form) BlurFocused() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.blur(f.focus)
}

// blur validates field i and renders its error state, unless a navigation
// shortcut was just activated — that suppression applies to exactly one
// blur and is consumed here.
func (f *Form) blur(i int) tea.Cmd {
	fld := f.fields[i]
	fld.Blur()
	if f.nav != nil && f.nav.ConsumeSuppression() {
		return nil
	}
	if msg := fld.Validate(); msg != "" {
		return fld.setError(msg)
	}
	// Valid: clear the annotation and render nothing.
	fld.clearAnnotation()
	return nil
}

// Validate checks every field, rendering error annotations for failures.
// It returns the index of the first invalid field and whether the form may
// submit. On failure the first invalid field receives focus.
func (f *Form) Validate() (int, tea.Cmd, bool) {
	first := -1
	var cmds []tea.Cmd
	for i, fld := range f.fields {
		if msg := fld.Validate(); msg != "" {
			cmds = append(cmds, fld.setError(msg))
			if first == -1 {
				first = i
			}
		} else {
			fld.clearAnnotation()
		}
	}
	if first == -1 {
		return -1, nil, true
	}
	cmds = append(cmds, f.FocusField(first))
	return first, tea.Batch(cmds...), false
}

// FocusField moves focus to field i without triggering blur validation;
// callers use it after a whole-form validation pass.
func (f *Form) FocusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.fields) {
		return nil
	}
	f.fields[f.focus].Blur()
	f.focus = i
	return f.fields[i].Focus()
}

// Field returns the field with the given name, or nil.
func (f *Form) Field(name string) *Field {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld
		}
	}
	return nil
}

// Value returns the named field's content, "" when the field is missing.
func (f *Form) Value(name string) string {
	if fld := f.Field(name); fld != nil {
		return fld.Value()
	}
	return ""
}

// Fields returns the form's fields in order.
func (f *Form) Fields() []*Field { return f.fields }

// FocusedIndex returns the index of the focused field.
func (f *Form) FocusedIndex() int { return f.focus }

// ClearAnnotations removes every displayed error across the form.
func (f *Form) ClearAnnotations() {
	for _, fld := range f.fields {
		fld.clearAnnotation()
	}
}

// Reset clears all field contents and annotations.
func (f *Form) Reset() {
	for _, fld := range f.fields {
		fld.Reset()
	}
	f.focus = 0
}
