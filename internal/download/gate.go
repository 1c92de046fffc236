// Package download implements the password challenge that gates protected
// document downloads.
package download

import (
	"errors"
	"strings"
)

// Item is the descriptor a download control carries: whether a password is
// required and where to verify and fetch.
type Item struct {
	Name             string
	RequiresPassword bool
	VerifyURL        string
	DownloadURL      string
}

// State is the challenge lifecycle state.
type State int

const (
	// StateIdle means no challenge is open.
	StateIdle State = iota
	// StateChallengeOpen means the password modal is visible and editable.
	StateChallengeOpen
	// StateVerifying means a verification request is in flight.
	StateVerifying
)

// ActionKind tells the caller what to do next after driving the gate.
type ActionKind int

const (
	// ActionNone requires no side effect; render current state.
	ActionNone ActionKind = iota
	// ActionOpenChallenge opens the password modal and focuses its field.
	ActionOpenChallenge
	// ActionVerify issues a verification request for Generation.
	ActionVerify
	// ActionDownload fetches URL; the challenge (if any) is closed.
	ActionDownload
	// ActionStale means a superseded verification result arrived; ignore it.
	ActionStale
)

// Action is the gate's instruction to the surrounding UI.
type Action struct {
	Kind          ActionKind
	URL           string // download or verify target
	Password      string // set for ActionVerify
	Generation    int    // set for ActionVerify; echo back via Resolve
	ClearPassword bool   // the password field should be emptied
	FocusPassword bool   // the password field should regain focus
}

const (
	msgPasswordRequired = "Please enter a password."
	msgIncorrect        = "Incorrect password. Please try again."
	msgGeneric          = "An error occurred. Please try again."
)

// rejection is an authenticated server refusal carrying a display message.
// Transport failures do not implement it.
type rejection interface {
	RejectionMessage() string
}

// Gate is the per-page challenge state machine. At most one challenge is in
// flight; activating a new item discards any prior, unfinished challenge.
type Gate struct {
	state      State
	active     *Item
	generation int
	errMsg     string
}

// State returns the current lifecycle state.
func (g *Gate) State() State { return g.state }

// Active returns the item the open challenge belongs to, or nil.
func (g *Gate) Active() *Item { return g.active }

// Err returns the inline error to display in the challenge modal.
func (g *Gate) Err() string { return g.errMsg }

// Generation returns the current challenge generation. Verification results
// carrying an older generation are discarded.
func (g *Gate) Generation() int { return g.generation }

// Activate handles a download control being triggered. Items without a
// password go straight to download; gated items open the challenge,
// superseding any previous one.
func (g *Gate) Activate(item Item) Action {
	if !item.RequiresPassword {
		return Action{Kind: ActionDownload, URL: item.DownloadURL}
	}

	g.generation++
	g.state = StateChallengeOpen
	it := item
	g.active = &it
	g.errMsg = ""
	return Action{Kind: ActionOpenChallenge, ClearPassword: true, FocusPassword: true}
}

// Submit handles the challenge being submitted with the given password.
// A blank password produces a local error and no network traffic.
func (g *Gate) Submit(password string) Action {
	if g.state != StateChallengeOpen || g.active == nil {
		return Action{Kind: ActionNone}
	}
	if strings.TrimSpace(password) == "" {
		g.errMsg = msgPasswordRequired
		return Action{Kind: ActionNone, FocusPassword: true}
	}

	g.state = StateVerifying
	g.errMsg = ""
	return Action{
		Kind:       ActionVerify,
		URL:        g.active.VerifyURL,
		Password:   password,
		Generation: g.generation,
	}
}

// Resolve handles the outcome of a verification request. Results from a
// superseded challenge are reported stale and change nothing. A rejection
// keeps the challenge open with the server's message and clears the
// password; a transport failure keeps the typed password so the user can
// retry without retyping.
func (g *Gate) Resolve(generation int, err error) Action {
	if generation != g.generation || g.state != StateVerifying {
		return Action{Kind: ActionStale}
	}

	if err == nil {
		url := g.active.DownloadURL
		g.close()
		return Action{Kind: ActionDownload, URL: url, ClearPassword: true}
	}

	g.state = StateChallengeOpen
	var rej rejection
	if errors.As(err, &rej) {
		g.errMsg = rej.RejectionMessage()
		if g.errMsg == "" {
			g.errMsg = msgIncorrect
		}
		return Action{Kind: ActionNone, ClearPassword: true, FocusPassword: true}
	}

	g.errMsg = msgGeneric
	return Action{Kind: ActionNone, FocusPassword: true}
}

// Cancel closes the challenge without any network traffic.
func (g *Gate) Cancel() Action {
	g.close()
	return Action{Kind: ActionNone, ClearPassword: true}
}

func (g *Gate) close() {
	g.state = StateIdle
	g.active = nil
	g.errMsg = ""
}
