package game

type Song struct {
	Title  string
	Artist string
	Music  string // Audio file, relative to the song directory
	Source string // The chart or sidecar file this was read from

	BPM    float64
	Offset float64 // Seconds, added to playback time before judging

	// The number of tempo changes after the first, which are not followed
	BPMChanges int
}

func (s *Song) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}
