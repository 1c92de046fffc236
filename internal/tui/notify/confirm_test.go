package notify

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drive runs the returned command (if any) and reports the resolution.
func resolution(t *testing.T, cmd tea.Cmd) (ResolvedMsg, bool) {
	t.Helper()
	if cmd == nil {
		return ResolvedMsg{}, false
	}
	msg, ok := cmd().(ResolvedMsg)
	return msg, ok
}

func TestConfirmKeyResolvesConfirmed(t *testing.T) {
	var c Confirm
	id, _ := c.Open(ConfirmRequest{Title: "Delete document"})

	res, ok := resolution(t, c.Update(key("enter")))
	if !ok {
		t.Fatal("enter on the focused confirm control must resolve")
	}
	if !res.Confirmed || res.ID != id {
		t.Errorf("unexpected resolution: %+v", res)
	}
	if c.IsOpen() {
		t.Error("dialog must close after resolving")
	}
}

func TestCancelKeyResolvesCancelled(t *testing.T) {
	var c Confirm
	id, _ := c.Open(ConfirmRequest{Title: "Delete document"})

	res, ok := resolution(t, c.Update(key("n")))
	if !ok || res.Confirmed || res.ID != id {
		t.Fatalf("expected cancelled resolution, got %+v ok=%v", res, ok)
	}
}

func TestEscResolvesCancelled(t *testing.T) {
	var c Confirm
	_, _ = c.Open(ConfirmRequest{Title: "Sign out"})

	res, ok := resolution(t, c.Update(key("esc")))
	if !ok || res.Confirmed {
		t.Fatalf("esc must cancel, got %+v ok=%v", res, ok)
	}
}

func TestTabMovesFocusToCancel(t *testing.T) {
	var c Confirm
	_, _ = c.Open(ConfirmRequest{Title: "Sign out"})
	if !c.FocusConfirm() {
		t.Fatal("confirm control must be focused on open")
	}

	c.Update(key("tab"))
	res, ok := resolution(t, c.Update(key("enter")))
	if !ok || res.Confirmed {
		t.Fatalf("enter on cancel control must cancel, got %+v ok=%v", res, ok)
	}
}

func TestOutcomeFiresExactlyOnce(t *testing.T) {
	var c Confirm
	_, _ = c.Open(ConfirmRequest{Title: "Delete"})

	if _, ok := resolution(t, c.Update(key("enter"))); !ok {
		t.Fatal("first decision must resolve")
	}
	if cmd := c.Update(key("enter")); cmd != nil {
		t.Error("keys after resolution must not emit a second outcome")
	}
	if cmd := c.Update(key("esc")); cmd != nil {
		t.Error("esc after resolution must not emit a second outcome")
	}
}

func TestSecondOpenReplacesAndCancelsFirst(t *testing.T) {
	var c Confirm
	firstID, _ := c.Open(ConfirmRequest{Title: "First", Message: "one"})

	secondID, replaced := c.Open(ConfirmRequest{Title: "Second", Message: "two"})
	if firstID == secondID {
		t.Fatal("replacement must carry its own id")
	}
	res, ok := resolution(t, replaced)
	if !ok || res.ID != firstID || res.Confirmed {
		t.Fatalf("replaced dialog must resolve cancelled, got %+v ok=%v", res, ok)
	}
	if got := c.Request().Title; got != "Second" {
		t.Errorf("dialog content not replaced: %q", got)
	}

	res, ok = resolution(t, c.Update(key("enter")))
	if !ok || res.ID != secondID || !res.Confirmed {
		t.Fatalf("second dialog outcome wrong: %+v ok=%v", res, ok)
	}
}

func TestCloseIsSilentAndRepeatable(t *testing.T) {
	var c Confirm
	id, _ := c.Open(ConfirmRequest{Title: "Quiet"})

	c.Close(id)
	if c.IsOpen() {
		t.Fatal("close must hide the dialog")
	}
	c.Close(id)         // repeat
	c.Close("whatever") // unknown id

	if cmd := c.Update(key("enter")); cmd != nil {
		t.Error("closed dialog must not resolve")
	}
}

func TestDefaultLabelsApplied(t *testing.T) {
	var c Confirm
	_, _ = c.Open(ConfirmRequest{Title: "Bare"})
	req := c.Request()
	if req.ConfirmLabel != "Confirm" || req.CancelLabel != "Cancel" {
		t.Errorf("default labels missing: %+v", req)
	}
}
