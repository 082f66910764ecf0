package game

import (
	"time"
)

// Judgement is a timing tier. A hit belongs to the first tier whose Time is
// greater than its absolute error, the last tier is for misses.
type Judgement struct {
	Time  time.Duration
	Color string
	Name  string
}

// Grade returns the tier for an absolute error. An error past every tier but
// the last still lands on the widest hit tier, since the caller already
// decided it was a hit.
func Grade(judgements []Judgement, d time.Duration) (int, *Judgement) {
	if len(judgements) < 2 {
		return -1, nil
	}
	for i := 0; i < len(judgements)-1; i++ {
		if d < judgements[i].Time {
			return i, &judgements[i]
		}
	}
	i := len(judgements) - 2
	return i, &judgements[i]
}

// Miss returns the miss tier.
func Miss(judgements []Judgement) (int, *Judgement) {
	if len(judgements) == 0 {
		return -1, nil
	}
	i := len(judgements) - 1
	return i, &judgements[i]
}
