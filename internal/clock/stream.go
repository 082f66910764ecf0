package clock

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Stream reads song time from the position of the audio being played, so
// judging follows the music even when the speaker falls behind. The position
// is in source samples, which makes it song time at any playback rate.
//
// Until the audio starts the wall clock counts up to zero, after that the
// stream position is used and never allowed to fall behind what was
// already reported.
type Stream struct {
	streamer beep.StreamSeeker
	format   beep.Format
	wall     *Wall
	playing  func() bool
	last     time.Duration
}

func NewStream(streamer beep.StreamSeeker, format beep.Format, wall *Wall) *Stream {
	s := &Stream{
		streamer: streamer,
		format:   format,
		wall:     wall,
	}
	s.playing = func() bool { return s.wall.Elapsed() >= 0 }
	return s
}

func (s *Stream) Elapsed() time.Duration {
	var elapsed time.Duration
	if s.playing() {
		speaker.Lock()
		position := s.streamer.Position()
		speaker.Unlock()
		elapsed = s.format.SampleRate.D(position)
	} else {
		elapsed = s.wall.Elapsed()
	}
	if elapsed < s.last {
		return s.last
	}
	s.last = elapsed
	return elapsed
}

// Length is the length of the song.
func (s *Stream) Length() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}
