// Package copystate models the "copied" confirmation shown by a code block's
// copy control.
package copystate

import "time"

// Window is how long a block stays Confirmed after its last activation.
const Window = 2000 * time.Millisecond

type State int

const (
	Idle State = iota
	Confirmed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Machine is the clock-free core of the copy state: Idle until activated,
// Confirmed until Window has passed since the most recent activation.
// The zero value is an Idle machine using Window.
type Machine struct {
	window   time.Duration
	deadline time.Time
	armed    bool
}

func NewMachine(window time.Duration) *Machine {
	return &Machine{window: window}
}

func (m *Machine) span() time.Duration {
	if m.window <= 0 {
		return Window
	}
	return m.window
}

// Activate moves to Confirmed and restarts the window at now.
func (m *Machine) Activate(now time.Time) {
	m.deadline = now.Add(m.span())
	m.armed = true
}

func (m *Machine) State(now time.Time) State {
	if m.armed && now.Before(m.deadline) {
		return Confirmed
	}
	return Idle
}

func (m *Machine) Copied(now time.Time) bool {
	return m.State(now) == Confirmed
}

// Deadline reports when the current confirmation ends. ok is false when the
// machine has never been activated or has been reset.
func (m *Machine) Deadline() (deadline time.Time, ok bool) {
	return m.deadline, m.armed
}

func (m *Machine) Reset() {
	m.deadline = time.Time{}
	m.armed = false
}
