package screens

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearthhq/hearth/internal/api"
	"github.com/hearthhq/hearth/internal/tui"
	"github.com/hearthhq/hearth/internal/tui/notify"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeInto(t *testing.T, l *Login, s string) {
	t.Helper()
	for _, r := range s {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs a command tree and returns the flattened messages. Commands
// built from tea.Tick sleep for their interval, so tests only drain trees
// whose messages they need.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestLogin(serverURL string) *Login {
	styles := tui.NewStyleSet(tui.DarkTheme)
	client := api.NewClient(serverURL, 2*time.Second, nil)
	l := NewLogin(styles, client)
	l.Init()
	return l
}

func fillCredentials(t *testing.T, l *Login) {
	t.Helper()
	typeInto(t, l, "ana@example.com")
	l.Update(key(tea.KeyTab))
	typeInto(t, l, "hunter2hunter2")
}

func TestSubmitInvalidFormNeverEntersBusyState(t *testing.T) {
	l := newTestLogin("http://unused.invalid")

	l.Update(key(tea.KeyEnter))

	if l.Busy() {
		t.Error("failed validation must leave the submit control enabled")
	}
	if got := l.SubmitLabel(); got != "Sign in" {
		t.Errorf("label must stay %q on failed validation, got %q", "Sign in", got)
	}
	if l.Form().Field("email").Err() == "" {
		t.Error("expected an error annotation on the empty email field")
	}
}

func TestSubmitValidFormEntersBusyState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok", "csrf_token": "csrf"})
	}))
	defer srv.Close()

	l := newTestLogin(srv.URL)
	fillCredentials(t, l)

	_, cmd := l.Update(key(tea.KeyEnter))

	if !l.Busy() {
		t.Fatal("valid submission must enter the busy state")
	}
	if got := l.SubmitLabel(); got != "Signing in..." {
		t.Errorf("busy label = %q, want %q", got, "Signing in...")
	}

	msgs := drain(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one login result, got %d messages", len(msgs))
	}
	_, cmd = l.Update(msgs[0])
	if l.Busy() {
		t.Error("completed submission must leave the busy state")
	}

	var complete bool
	for _, m := range drain(t, cmd) {
		if _, ok := m.(tui.ScreenCompleteMsg); ok {
			complete = true
		}
	}
	if !complete {
		t.Error("successful sign-in must complete the screen")
	}
}

func TestLoginRejectionRestoresControlAndShowsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password."})
	}))
	defer srv.Close()

	l := newTestLogin(srv.URL)
	fillCredentials(t, l)

	_, cmd := l.Update(key(tea.KeyEnter))
	msgs := drain(t, cmd)
	_, cmd = l.Update(msgs[0])

	if l.Busy() {
		t.Error("rejection must restore the submit control")
	}
	if got := l.SubmitLabel(); got != "Sign in" {
		t.Errorf("rejection must restore the label, got %q", got)
	}

	var toast notify.ShowMsg
	for _, m := range drain(t, cmd) {
		if s, ok := m.(notify.ShowMsg); ok {
			toast = s
		}
	}
	if toast.Kind != notify.KindError {
		t.Errorf("toast kind = %v, want error", toast.Kind)
	}
	if toast.Message != "Invalid email or password." {
		t.Errorf("toast message = %q, want the server's rejection message", toast.Message)
	}
}

func TestBusySubmissionIgnoresInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	}))
	defer srv.Close()

	l := newTestLogin(srv.URL)
	fillCredentials(t, l)
	l.Update(key(tea.KeyEnter))

	_, cmd := l.Update(key(tea.KeyEnter))
	if cmd != nil {
		t.Error("keys during a busy submission must be ignored")
	}
}

func TestNavShortcutLeavesNoErrorAnnotations(t *testing.T) {
	l := newTestLogin("http://unused.invalid")

	// Email is focused, empty, and required; leaving it for a navigation
	// shortcut must not paint an error.
	l.Update(key(tea.KeyCtrlR))

	if got := l.Form().Field("email").Err(); got != "" {
		t.Errorf("nav shortcut must suppress blur validation, got %q", got)
	}
}

func TestPasswordVisibilityToggle(t *testing.T) {
	l := newTestLogin("http://unused.invalid")

	l.Update(key(tea.KeyCtrlT))
	if !l.Form().Field("password").Revealed() {
		t.Error("ctrl+t must reveal the password")
	}
	l.Update(key(tea.KeyCtrlT))
	if l.Form().Field("password").Revealed() {
		t.Error("second ctrl+t must mask the password again")
	}
}
