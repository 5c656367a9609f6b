// Package clock provides ports.Clock implementations backed by the time
// package and a manually advanced fake for tests.
package clock

import (
	"time"

	"github.com/xvierd/prodvana-cli/internal/ports"
)

// Real is the wall clock.
type Real struct{}

// Ensure Real implements ports.Clock.
var _ ports.Clock = Real{}

// New returns the wall clock.
func New() Real { return Real{} }

func (Real) Now() time.Time { return time.Now() }

func (Real) NewTicker(d time.Duration) ports.Ticker {
	return realTicker{time.NewTicker(d)}
}

func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }
