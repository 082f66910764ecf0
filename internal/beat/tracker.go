package beat

import "math"

type Accept int

const (
	Accepted Accept = iota
	Duplicate
)

func (a Accept) String() string {
	if a == Duplicate {
		return "duplicate"
	}
	return "accepted"
}

type PressResult struct {
	Judgment Judgment
	Accept   Accept
	Counts   bool // The beat is past the warm-up
}

type MissedBeat struct {
	Beat   int
	LateBy float64 // Seconds past the beat when it was noticed
}

// Tracker resolves every beat at most once, either with the first on beat
// press or with a miss once its window has closed.
//
// A Tracker is not safe for concurrent use, and elapsed must not decrease
// between calls until the next Reset.
type Tracker struct {
	config Config

	// Beats at or past the cursor, and warm-up beats, that were pressed.
	// Everything in [WarmUp, cursor) is resolved and is not kept here.
	resolved map[int]struct{}
	// Next beat to check for a miss
	cursor int
}

func New(config Config) *Tracker {
	t := &Tracker{}
	t.Reset(config)
	return t
}

func (t *Tracker) Config() Config {
	return t.config
}

// Reset starts a new session with the given configuration.
func (t *Tracker) Reset(config Config) {
	t.config = config
	t.resolved = map[int]struct{}{}
	t.cursor = config.WarmUp
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// Cursor is the next beat that PollMissed will consider.
func (t *Tracker) Cursor() int {
	return t.cursor
}

func (t *Tracker) Resolved(index int) bool {
	if index >= t.config.WarmUp && index < t.cursor {
		return true
	}
	_, ok := t.resolved[index]
	return ok
}

// RegisterPress judges a press. Only an on beat press claims its beat, so a
// stray press just outside the window never blocks a later good one.
func (t *Tracker) RegisterPress(elapsed float64) PressResult {
	judgment := t.config.Judge(elapsed)
	result := PressResult{
		Judgment: judgment,
		Accept:   Accepted,
		Counts:   judgment.Beat >= t.config.WarmUp,
	}
	if !judgment.OnBeat {
		return result
	}
	if t.Resolved(judgment.Beat) {
		result.Accept = Duplicate
		return result
	}
	t.resolved[judgment.Beat] = struct{}{}
	return result
}

// PollMissed resolves and returns, in beat order, every unresolved beat whose
// window closed before elapsed.
func (t *Tracker) PollMissed(elapsed float64) []MissedBeat {
	missed := []MissedBeat{}
	period := t.config.Period()

	// Pathological configurations would never stop
	if math.IsNaN(period) || math.IsInf(period, 0) || period <= 0 {
		return missed
	}
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return missed
	}

	for {
		index := t.cursor
		beatTime := t.config.TimeOf(index)
		// Written so that a NaN offset or tolerance also stops the scan
		if !(elapsed > beatTime+t.config.Tolerance) {
			break
		}

		if _, ok := t.resolved[index]; ok {
			delete(t.resolved, index)
		} else {
			missed = append(missed, MissedBeat{
				Beat:   index,
				LateBy: elapsed - beatTime,
			})
		}

		t.cursor = index + 1
		if t.cursor < t.config.WarmUp {
			t.cursor = t.config.WarmUp
		}
	}

	return missed
}
