package beat

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTempo     = errors.New("tempo must be finite and greater than zero")
	ErrOffset    = errors.New("offset must be finite")
	ErrTolerance = errors.New("tolerance must be finite and not negative")
	ErrWarmUp    = errors.New("warm-up count must not be negative")
)

// Config is the timing of one session. All times are in seconds.
type Config struct {
	Tempo     float64 // Beats per minute
	Offset    float64 // Phase offset, beat 0 occurs at -Offset
	Tolerance float64 // Half width of the on beat window
	WarmUp    int     // Leading beats that are judged but do not count
}

type Judgment struct {
	Beat   int     // The nearest beat
	OnBeat bool    // Inside the tolerance window
	Error  float64 // Negative is early, positive is late
}

// Validate reports why the configuration cannot be judged against.
// Nothing else in this package validates.
func (c Config) Validate() error {
	if math.IsNaN(c.Tempo) || math.IsInf(c.Tempo, 0) || c.Tempo <= 0 {
		return fmt.Errorf("%w: %v", ErrTempo, c.Tempo)
	}
	if math.IsNaN(c.Offset) || math.IsInf(c.Offset, 0) {
		return fmt.Errorf("%w: %v", ErrOffset, c.Offset)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return fmt.Errorf("%w: %v", ErrTolerance, c.Tolerance)
	}
	if c.WarmUp < 0 {
		return fmt.Errorf("%w: %v", ErrWarmUp, c.WarmUp)
	}
	return nil
}

// Period is the number of seconds per beat.
func (c Config) Period() float64 {
	return 60 / c.Tempo
}

// TimeOf is the nominal time of the beat.
func (c Config) TimeOf(index int) float64 {
	return float64(index)*c.Period() - c.Offset
}

// Judge finds the beat nearest to elapsed and how far off it is.
//
// The phase is shifted by half a period so the modulo window is centred on a
// beat, which then sits at period/2 inside the window. The beat index is
// rounded separately; at an exact half period boundary the error is reported
// as early against the following beat, and rounding picks that same beat.
// Times nearer a grid point before beat 0 are never on beat.
func (c Config) Judge(elapsed float64) Judgment {
	period := c.Period()
	half := period / 2

	phase := math.Mod(elapsed+c.Offset+half, period)
	if phase < 0 {
		phase += period
	}

	e := phase - half
	onBeat := math.Abs(e) <= c.Tolerance
	index := math.Round((elapsed + c.Offset) / period)
	// Before beat 0 the nearest grid point is not a beat of the song, so the
	// press is reported against beat 0 but can never claim it.
	if index < 0 || math.IsNaN(index) {
		index = 0
		onBeat = false
	}

	return Judgment{
		Beat:   int(index),
		OnBeat: onBeat,
		Error:  e,
	}
}
