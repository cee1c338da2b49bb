package scanner

import (
	"math/rand/v2"
	"time"
)

// Jitter samples a uniform per-request delay from [min, max]. Each
// worker sleeps for a fresh sample before probing, so requests against
// a target never arrive in lockstep bursts.
type Jitter struct {
	min  time.Duration
	span time.Duration
}

// NewJitter creates a Jitter over [min, max]. max below min is
// clamped to min.
func NewJitter(min, max time.Duration) *Jitter {
	span := max - min
	if span < 0 {
		span = 0
	}
	return &Jitter{min: min, span: span}
}

// Delay returns the next sampled delay. Safe for concurrent use.
func (j *Jitter) Delay() time.Duration {
	if j.span == 0 {
		return j.min
	}
	return j.min + rand.N(j.span)
}
