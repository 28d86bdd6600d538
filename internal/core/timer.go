package core

import "time"

// FixedStep converts a ticks-per-second rate into the delay between ticks.
type FixedStep struct {
	step time.Duration
}

// NewFixedStep constructs a FixedStep targeting the given TPS. Non-positive
// rates fall back to 60.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	return &FixedStep{step: time.Second / time.Duration(tps)}
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }
