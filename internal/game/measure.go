package game

const BeatsPerMeasure = 4

// Downbeat is true for the first beat of every measure.
func Downbeat(beat int) bool {
	return beat%BeatsPerMeasure == 0
}
