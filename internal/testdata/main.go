package testdata

import (
	"encoding/json"
	"time"

	"git.lost.host/meutraa/onbeat/internal/beat"
	"git.lost.host/meutraa/onbeat/internal/game"
)

// A short play at 120 bpm. Beats 0, 1, 2, 3 and 6 are hit, 1545ms is a
// second press on beat 3, 2120ms is off beat, beats 4, 5, 7 and 8 are missed.
const data = `[
	{"Key": 0, "HitTime": 3000000},
	{"Key": 0, "HitTime": 498000000},
	{"Key": 1, "HitTime": 1012000000},
	{"Key": 0, "HitTime": 1530000000},
	{"Key": 0, "HitTime": 1545000000},
	{"Key": 1, "HitTime": 2120000000},
	{"Key": 0, "HitTime": 2990000000}
]`

var Config = beat.Config{Tempo: 120, Offset: 0, Tolerance: 0.05}

const Length = 4200 * time.Millisecond

var Song = game.Song{Title: "Metronome", Artist: "Test", BPM: 120}

func GetInputs() (*[]game.Input, error) {
	var inputs []game.Input
	if err := json.Unmarshal([]byte(data), &inputs); nil != err {
		return nil, err
	}
	return &inputs, nil
}
