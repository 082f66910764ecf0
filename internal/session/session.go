// Package session turns presses and ticks into judged events and keeps the
// running stats of a play.
package session

import (
	"math"
	"time"

	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/clock"
	"git.lost.host/meutraa/onbeat/internal/game"
)

type Kind int

const (
	Hit Kind = iota
	OffBeat
	Duplicate
	Miss
)

func (k Kind) String() string {
	switch k {
	case Hit:
		return "hit"
	case OffBeat:
		return "off beat"
	case Duplicate:
		return "duplicate"
	case Miss:
		return "miss"
	}
	return "unknown"
}

type Event struct {
	Kind   Kind
	Key    int
	Beat   int
	At     time.Duration // Song time of the press or tick
	Error  time.Duration // Signed error of a press, how late a miss was noticed
	Counts bool          // Past the warm-up

	// The timing tier of a hit or a miss
	Tier      int
	Judgement *game.Judgement
}

type Stats struct {
	Hits       int
	Misses     int
	OffBeat    int
	Duplicates int
	Counts     []int // Per judgement, the last is misses
	TotalError time.Duration
	Mean       time.Duration
	Stdev      time.Duration
}

// Session is owned by a single goroutine, like the tracker inside it.
type Session struct {
	clock      clock.Clock
	tracker    *beat.Tracker
	judgements []game.Judgement

	counts     []int
	errors     []time.Duration // Signed errors of hits that count
	totalError time.Duration
	offBeat    int
	duplicates int
	misses     int
	inputs     []game.Input

	last    time.Duration
	started bool
}

func New(config beat.Config, c clock.Clock, judgements []game.Judgement) (*Session, error) {
	if err := config.Validate(); nil != err {
		return nil, err
	}
	s := &Session{
		clock:      c,
		tracker:    beat.New(config),
		judgements: judgements,
	}
	s.clear()
	return s, nil
}

func (s *Session) clear() {
	s.counts = make([]int, len(s.judgements))
	s.errors = nil
	s.totalError = 0
	s.offBeat = 0
	s.duplicates = 0
	s.misses = 0
	s.inputs = []game.Input{}
	s.started = false
}

// Reset starts over, with a new configuration, from any song time.
func (s *Session) Reset(config beat.Config) error {
	if err := config.Validate(); nil != err {
		return err
	}
	s.tracker.Reset(config)
	s.clear()
	return nil
}

func (s *Session) Config() beat.Config {
	return s.tracker.Config()
}

func (s *Session) Judgements() []game.Judgement {
	return s.judgements
}

// Song time never goes backwards within a session.
func (s *Session) monotonic(at time.Duration) time.Duration {
	if s.started && at < s.last {
		return s.last
	}
	s.started = true
	s.last = at
	return at
}

func duration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// Press judges a press of key now.
func (s *Session) Press(key int) []Event {
	return s.PressAt(key, s.clock.Elapsed())
}

// PressAt judges a press of key at the given song time. Beats that closed
// before the press are reported first.
func (s *Session) PressAt(key int, at time.Duration) []Event {
	events := s.AdvanceTo(at)
	at = s.monotonic(at)
	s.inputs = append(s.inputs, game.Input{Key: key, HitTime: at})

	r := s.tracker.RegisterPress(at.Seconds())
	e := Event{
		Key:    key,
		Beat:   r.Judgment.Beat,
		At:     at,
		Error:  duration(r.Judgment.Error),
		Counts: r.Counts,
		Tier:   -1,
	}

	switch {
	case !r.Judgment.OnBeat:
		e.Kind = OffBeat
		s.offBeat++
	case r.Accept == beat.Duplicate:
		e.Kind = Duplicate
		s.duplicates++
	default:
		e.Kind = Hit
		abs := e.Error
		if abs < 0 {
			abs = -abs
		}
		e.Tier, e.Judgement = game.Grade(s.judgements, abs)
		if e.Counts {
			s.errors = append(s.errors, e.Error)
			s.totalError += abs
			if e.Tier >= 0 {
				s.counts[e.Tier]++
			}
		}
	}

	return append(events, e)
}

// Advance reports the beats that closed without a hit up to now.
func (s *Session) Advance() []Event {
	return s.AdvanceTo(s.clock.Elapsed())
}

func (s *Session) AdvanceTo(at time.Duration) []Event {
	at = s.monotonic(at)
	missed := s.tracker.PollMissed(at.Seconds())
	events := make([]Event, 0, len(missed))
	tier, judgement := game.Miss(s.judgements)
	for _, m := range missed {
		s.misses++
		if tier >= 0 {
			s.counts[tier]++
		}
		events = append(events, Event{
			Kind:      Miss,
			Key:       -1,
			Beat:      m.Beat,
			At:        at,
			Error:     duration(m.LateBy),
			Counts:    true,
			Tier:      tier,
			Judgement: judgement,
		})
	}
	return events
}

// Inputs are all the presses so far, in order.
func (s *Session) Inputs() []game.Input {
	return s.inputs
}

func (s *Session) Stats() Stats {
	st := Stats{
		Hits:       len(s.errors),
		Misses:     s.misses,
		OffBeat:    s.offBeat,
		Duplicates: s.duplicates,
		Counts:     append([]int(nil), s.counts...),
		TotalError: s.totalError,
	}
	if st.Hits == 0 {
		return st
	}

	sum := 0.0
	for _, e := range s.errors {
		sum += float64(e)
	}
	mean := sum / float64(st.Hits)
	st.Mean = time.Duration(math.Round(mean))

	if st.Hits > 1 {
		stdev := 0.0
		for _, e := range s.errors {
			xi := float64(e) - mean
			stdev += xi * xi
		}
		stdev /= float64(st.Hits - 1)
		st.Stdev = time.Duration(math.Round(math.Sqrt(stdev)))
	}
	return st
}
