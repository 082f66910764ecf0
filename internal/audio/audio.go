// Package audio decodes songs and plays them on the speaker.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Decode opens an mp3, ogg or wav file.
func Decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "unable to open audio")
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, errors.Errorf("unsupported audio %v", file)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "unable to decode %v", file)
	}
	return streamer, format, nil
}

// Play starts the speaker at rate times the sample rate of the song, and
// plays the streamer after delay. done is closed when the song has finished.
func Play(streamer beep.Streamer, format beep.Format, rate float64, delay time.Duration) (<-chan struct{}, error) {
	sr := beep.SampleRate(math.Round(float64(format.SampleRate) * rate))
	if err := speaker.Init(sr, sr.N(time.Second/60)); err != nil {
		return nil, errors.Wrap(err, "unable to open speaker")
	}

	done := make(chan struct{})
	go func() {
		time.Sleep(delay)
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
	}()
	return done, nil
}
