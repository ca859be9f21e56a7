package copystate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMachine_SingleActivation(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var m Machine

	assert.Equal(t, Idle, m.State(t0))
	_, ok := m.Deadline()
	assert.False(t, ok)

	m.Activate(t0)
	assert.True(t, m.Copied(t0))
	assert.True(t, m.Copied(t0.Add(1999*time.Millisecond)))
	assert.False(t, m.Copied(t0.Add(2000*time.Millisecond)))

	deadline, ok := m.Deadline()
	assert.True(t, ok)
	assert.Equal(t, t0.Add(Window), deadline)
}

func TestMachine_ReactivationRestartsWindow(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMachine(Window)

	m.Activate(t0)
	m.Activate(t0.Add(1000 * time.Millisecond))

	assert.Equal(t, Confirmed, m.State(t0.Add(2000*time.Millisecond)))
	assert.Equal(t, Confirmed, m.State(t0.Add(2999*time.Millisecond)))
	assert.Equal(t, Idle, m.State(t0.Add(3000*time.Millisecond)))
}

func TestMachine_Reset(t *testing.T) {
	t0 := time.Now()
	m := NewMachine(time.Second)
	m.Activate(t0)
	m.Reset()

	assert.False(t, m.Copied(t0))
	_, ok := m.Deadline()
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "unknown", State(7).String())
}
