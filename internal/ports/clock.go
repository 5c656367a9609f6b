package ports

import "time"

// Clock abstracts time so the session ticker and the trial timer can be
// driven by tests.
// This is a driven port (implemented by adapters).
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a ticker firing every d.
	NewTicker(d time.Duration) Ticker

	// AfterFunc calls f in its own goroutine after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Timer is a cancellable one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}
