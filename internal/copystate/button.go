package copystate

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clipboard receives copied code.
type Clipboard interface {
	WriteAll(text string) error
}

// Timer is the handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Button)

func WithScheduler(s Scheduler) Option {
	return func(b *Button) { b.sched = s }
}

func WithClock(now func() time.Time) Option {
	return func(b *Button) { b.now = now }
}

func WithWindow(d time.Duration) Option {
	return func(b *Button) { b.machine = NewMachine(d) }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Button) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithOnChange registers a callback for every Idle/Confirmed transition.
// It runs without the button's lock held.
func WithOnChange(fn func(State)) Option {
	return func(b *Button) { b.onChange = fn }
}

// Button drives a Machine with a real timer. At most one revert timer is live
// per button; a timer superseded by a later activation does nothing when it
// fires.
type Button struct {
	mu       sync.Mutex
	clip     Clipboard
	sched    Scheduler
	now      func() time.Time
	logger   *zap.Logger
	onChange func(State)

	machine *Machine
	state   State
	timer   Timer
	gen     uint64
	closed  bool
}

func NewButton(clip Clipboard, opts ...Option) *Button {
	b := &Button{
		clip:    clip,
		sched:   realScheduler{},
		now:     time.Now,
		logger:  zap.NewNop(),
		machine: NewMachine(Window),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Activate copies code and shows the confirmation, restarting the window if it
// is already showing. Clipboard failures are logged and otherwise ignored.
func (b *Button) Activate(code string) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}

	if b.clip != nil {
		if err := b.clip.WriteAll(code); err != nil {
			b.logger.Warn("copystate: clipboard write failed", zap.Error(err))
		}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.machine.Activate(b.now())
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.timer = b.sched.AfterFunc(b.machine.span(), func() { b.expire(gen) })
	changed := b.state != Confirmed
	b.state = Confirmed
	b.mu.Unlock()

	if changed {
		b.notify(Confirmed)
	}
}

func (b *Button) expire(gen uint64) {
	b.mu.Lock()
	if b.closed || gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.machine.Reset()
	b.timer = nil
	b.state = Idle
	b.mu.Unlock()

	b.notify(Idle)
}

func (b *Button) notify(s State) {
	if b.onChange != nil {
		b.onChange(s)
	}
}

func (b *Button) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Button) Copied() bool {
	return b.State() == Confirmed
}

// Deadline reports when the live confirmation reverts.
func (b *Button) Deadline() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.machine.Deadline()
}

// Close cancels any pending revert. Activations after Close are ignored.
func (b *Button) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.closed = true
	b.gen++
}
