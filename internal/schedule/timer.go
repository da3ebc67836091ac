// Package schedule provides Bubble Tea timers whose lifetime is owned by a
// component. Every tick carries the timer id and generation it was armed with,
// so a restarted or stopped timer silently drops ticks that are already in
// flight.
package schedule

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is delivered when an armed timer elapses
type TickMsg struct {
	ID  int
	At  time.Time
	gen int
}

// Timer is a single logical timer. Start re-arms it, Stop disarms it.
type Timer struct {
	id       int
	gen      int
	interval time.Duration
	active   bool
}

// New creates a disarmed timer
func New(interval time.Duration) *Timer {
	return &Timer{
		id:       nextID(),
		interval: interval,
	}
}

// ID returns the process-unique timer id
func (t *Timer) ID() int {
	return t.id
}

// Interval returns the configured interval
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// SetInterval changes the interval used by the next Start
func (t *Timer) SetInterval(d time.Duration) {
	t.interval = d
}

// Active reports whether a tick is currently expected
func (t *Timer) Active() bool {
	return t.active
}

// Start arms the timer, invalidating any tick from a previous arm
func (t *Timer) Start() tea.Cmd {
	t.gen++
	t.active = true
	id, gen := t.id, t.gen
	return tea.Tick(t.interval, func(at time.Time) tea.Msg {
		return TickMsg{ID: id, At: at, gen: gen}
	})
}

// Stop disarms the timer; outstanding ticks are ignored by Owns
func (t *Timer) Stop() {
	t.gen++
	t.active = false
}

// Owns reports whether msg is the live tick of this timer. A tick that is
// owned consumes the arm: the timer becomes inactive until started again.
func (t *Timer) Owns(msg tea.Msg) bool {
	tick, ok := msg.(TickMsg)
	if !ok || !t.active {
		return false
	}
	if tick.ID != t.id || tick.gen != t.gen {
		return false
	}
	t.active = false
	return true
}
