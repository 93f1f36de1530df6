package gekko

import (
	"time"
)

// Time is the wall clock a host loop ticks once per frame. Dt is the time
// elapsed between the last two ticks.
type Time struct {
	Time time.Time
	Dt   time.Duration
}

func NewTime(now time.Time) *Time {
	return &Time{
		Time: now,
		Dt:   0,
	}
}

func (t *Time) Tick(now time.Time) {
	t.Dt = now.Sub(t.Time)
	t.Time = now
}

// Seconds returns Dt as the float seconds the integrator expects.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}
