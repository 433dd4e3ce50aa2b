package led8x16

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// CountDown is the minimal countdown-timer capability the scan engine needs.
//
// Start arms the timer to expire after one period of rate; Expired reports
// whether the armed period has elapsed. The scan engine spin-polls Expired
// until it reports true, so Expired must be cheap and must not block.
//
// Expired has no error return on purpose: a countdown that cannot answer is
// a broken peripheral, not a runtime condition. An implementation that can
// genuinely fail should panic rather than lie.
type CountDown interface {
	Start(rate physic.Frequency)
	Expired() bool
}

// clockTimer implements CountDown on the host monotonic clock.
type clockTimer struct {
	deadline time.Time
}

// NewClockTimer returns a CountDown backed by the host monotonic clock, for
// targets without a dedicated hardware countdown peripheral. An unarmed
// timer reports expired, so the first plane write never blocks.
func NewClockTimer() CountDown {
	return &clockTimer{}
}

func (t *clockTimer) Start(rate physic.Frequency) {
	t.deadline = time.Now().Add(rate.Period())
}

func (t *clockTimer) Expired() bool {
	return !time.Now().Before(t.deadline)
}
