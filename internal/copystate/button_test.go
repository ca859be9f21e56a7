package copystate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, text)
	return c.err
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler records timers and fires them on demand.
type manualScheduler struct {
	timers []*fakeTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fire(i int) {
	s.timers[i].f()
}

func TestButton_ActivateAndRevert(t *testing.T) {
	clip := &fakeClipboard{}
	sched := &manualScheduler{}
	var changes []State
	b := NewButton(clip, WithScheduler(sched), WithOnChange(func(s State) { changes = append(changes, s) }))
	defer b.Close()

	assert.False(t, b.Copied())
	b.Activate("fmt.Println(1)")

	assert.True(t, b.Copied())
	assert.Equal(t, []string{"fmt.Println(1)"}, clip.writes)
	require.Len(t, sched.timers, 1)
	assert.Equal(t, Window, sched.timers[0].d)

	sched.fire(0)
	assert.False(t, b.Copied())
	assert.Equal(t, []State{Confirmed, Idle}, changes)
	_, ok := b.Deadline()
	assert.False(t, ok)
}

func TestButton_ReactivationSupersedesTimer(t *testing.T) {
	sched := &manualScheduler{}
	var changes []State
	b := NewButton(&fakeClipboard{}, WithScheduler(sched), WithOnChange(func(s State) { changes = append(changes, s) }))
	defer b.Close()

	b.Activate("a")
	b.Activate("a")
	require.Len(t, sched.timers, 2)
	assert.True(t, sched.timers[0].stopped)

	// a stale timer that fires anyway must not revert
	sched.fire(0)
	assert.True(t, b.Copied())

	sched.fire(1)
	assert.False(t, b.Copied())
	assert.Equal(t, []State{Confirmed, Idle}, changes)
}

func TestButton_DeadlineFollowsLastActivation(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := t0
	b := NewButton(&fakeClipboard{}, WithScheduler(&manualScheduler{}), WithClock(func() time.Time { return now }))
	defer b.Close()

	b.Activate("x")
	now = t0.Add(time.Second)
	b.Activate("x")

	deadline, ok := b.Deadline()
	require.True(t, ok)
	assert.Equal(t, t0.Add(3*time.Second), deadline)
}

func TestButton_ClipboardErrorIgnored(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no display")}
	b := NewButton(clip, WithScheduler(&manualScheduler{}))
	defer b.Close()

	b.Activate("x")
	assert.True(t, b.Copied())
}

func TestButton_CloseCancelsTimer(t *testing.T) {
	sched := &manualScheduler{}
	clip := &fakeClipboard{}
	b := NewButton(clip, WithScheduler(sched))

	b.Activate("x")
	b.Close()
	assert.True(t, sched.timers[0].stopped)

	sched.fire(0)
	assert.True(t, b.Copied(), "state is frozen after teardown")

	b.Activate("y")
	assert.Len(t, sched.timers, 1)
	assert.Equal(t, []string{"x"}, clip.writes, "closed button does not copy")
}

func TestButton_ActivateAfterCloseSkipsClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	b := NewButton(clip, WithScheduler(&manualScheduler{}))
	b.Close()

	b.Activate("code")
	assert.Empty(t, clip.writes)
	assert.False(t, b.Copied())
}

func TestButton_RealTimer(t *testing.T) {
	reverted := make(chan struct{})
	b := NewButton(&fakeClipboard{}, WithWindow(20*time.Millisecond), WithOnChange(func(s State) {
		if s == Idle {
			close(reverted)
		}
	}))
	defer b.Close()

	b.Activate("x")
	assert.True(t, b.Copied())

	select {
	case <-reverted:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation never reverted")
	}
	assert.False(t, b.Copied())
}

func TestButton_CloseBeforeRealTimerFires(t *testing.T) {
	b := NewButton(&fakeClipboard{}, WithWindow(time.Hour))
	b.Activate("x")
	b.Close()
}
