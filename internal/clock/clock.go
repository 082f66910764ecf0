// Package clock supplies the song time that presses and ticks are judged at.
package clock

import (
	"time"
)

// Clock reports how far into the song playback is. It must never go
// backwards while a session is running.
type Clock interface {
	Elapsed() time.Duration
}

// Wall measures song time with the system clock. Elapsed is negative until
// the start delay has passed.
type Wall struct {
	start time.Time
	rate  float64
	now   func() time.Time
}

func NewWall(delay time.Duration, rate float64) *Wall {
	return newWall(time.Now, delay, rate)
}

func newWall(now func() time.Time, delay time.Duration, rate float64) *Wall {
	if rate <= 0 {
		rate = 1
	}
	return &Wall{
		start: now().Add(delay),
		rate:  rate,
		now:   now,
	}
}

func (w *Wall) Elapsed() time.Duration {
	return time.Duration(float64(w.now().Sub(w.start)) * w.rate)
}

// Manual only moves when told to, for tests and replays.
type Manual struct {
	elapsed time.Duration
}

func (m *Manual) Elapsed() time.Duration {
	return m.elapsed
}

func (m *Manual) Set(elapsed time.Duration) {
	m.elapsed = elapsed
}

func (m *Manual) Advance(d time.Duration) {
	m.elapsed += d
}
