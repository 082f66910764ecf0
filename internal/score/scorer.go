package score

import (
	"time"

	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/game"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the presses of this play
	Save(song *game.Song, history *History) error

	// Load up previous plays of the song
	Load(song *game.Song) ([]History, error)

	// Replay a play and judge it again
	Score(history *History, judgements []game.Judgement) (Score, error)
}

type History struct {
	ID       int64
	Sum      string
	Inputs   *[]game.Input
	Rate     float64
	Config   beat.Config
	Length   time.Duration // How much of the song was played
	PlayedAt time.Time
}

type Score struct {
	Hits       uint64
	MissCount  uint64
	OffBeat    uint64
	TotalError time.Duration
	Counts     []int
}
