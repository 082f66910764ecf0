package game

import "time"

type Input struct {
	Key     int           // Which key, pad or note was pressed
	HitTime time.Duration // Song time of the press
}
