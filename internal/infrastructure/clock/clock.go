package clock

import (
	"sync"
	"time"
)

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a settable instant. Tests advance it explicitly.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
