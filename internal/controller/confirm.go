package controller

import "errors"

// ErrNoPendingConfirmation is returned when Confirm is called with nothing
// awaiting confirmation.
var ErrNoPendingConfirmation = errors.New("no pending confirmation")

type gateState int

const (
	gateIdle gateState = iota
	gateAwaiting
)

// PendingConfirmation identifies the target of a destructive action waiting
// for the user's explicit go-ahead.
type PendingConfirmation struct {
	ID    int64
	Label string
}

// ConfirmGate is the two-step gate in front of every destructive action:
// idle → awaiting → idle. The destructive call itself only ever fires out of
// a successful Confirm; Cancel is a pure local reset.
type ConfirmGate struct {
	state   gateState
	pending PendingConfirmation
}

func (g *ConfirmGate) Request(id int64, label string) {
	g.state = gateAwaiting
	g.pending = PendingConfirmation{ID: id, Label: label}
}

func (g *ConfirmGate) Pending() (PendingConfirmation, bool) {
	if g.state != gateAwaiting {
		return PendingConfirmation{}, false
	}
	return g.pending, true
}

func (g *ConfirmGate) Confirm() (PendingConfirmation, error) {
	if g.state != gateAwaiting {
		return PendingConfirmation{}, ErrNoPendingConfirmation
	}
	pending := g.pending
	g.state = gateIdle
	g.pending = PendingConfirmation{}
	return pending, nil
}

func (g *ConfirmGate) Cancel() {
	g.state = gateIdle
	g.pending = PendingConfirmation{}
}
