package clock

import (
	"sync"
	"time"

	"github.com/xvierd/prodvana-cli/internal/ports"
)

// Fake is a clock that only moves when Advance is called.
//
// Ticks are delivered with a blocking send, so Advance returns only after
// every due tick was received or its ticker stopped. AfterFunc callbacks run
// synchronously inside Advance.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	timers  []*fakeTimer
}

// Ensure Fake implements ports.Clock.
var _ ports.Clock = (*Fake)(nil)

// NewFake returns a fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTicker(d time.Duration) ports.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{
		c:      make(chan time.Time),
		stop:   make(chan struct{}),
		period: d,
		next:   f.now.Add(d),
	}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) ports.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{clock: f, when: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves the clock forward by d, firing everything that falls due in
// chronological order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		at, fire := f.nextDue(target)
		if fire == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = at
		f.mu.Unlock()
		fire(at)
	}
}

// Pending returns the number of live tickers and unfired timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tickers {
		if !t.stopped() {
			n++
		}
	}
	for _, t := range f.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// nextDue finds the earliest event at or before target and claims it.
// Callers hold f.mu.
func (f *Fake) nextDue(target time.Time) (time.Time, func(time.Time)) {
	var (
		best   time.Time
		ticker *fakeTicker
		timer  *fakeTimer
	)
	for _, t := range f.tickers {
		if t.stopped() || t.next.After(target) {
			continue
		}
		if ticker == nil && timer == nil || t.next.Before(best) {
			best, ticker, timer = t.next, t, nil
		}
	}
	for _, t := range f.timers {
		if t.done || t.when.After(target) {
			continue
		}
		if ticker == nil && timer == nil || t.when.Before(best) {
			best, ticker, timer = t.when, nil, t
		}
	}

	switch {
	case ticker != nil:
		ticker.next = ticker.next.Add(ticker.period)
		return best, ticker.send
	case timer != nil:
		timer.done = true
		fn := timer.fn
		return best, func(time.Time) { fn() }
	default:
		return time.Time{}, nil
	}
}

type fakeTicker struct {
	c      chan time.Time
	stop   chan struct{}
	once   sync.Once
	period time.Duration
	next   time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

func (t *fakeTicker) stopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func (t *fakeTicker) send(at time.Time) {
	select {
	case t.c <- at:
	case <-t.stop:
	}
}

type fakeTimer struct {
	clock *Fake
	when  time.Time
	fn    func()
	done  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
