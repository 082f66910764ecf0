package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, column int, content string, frames int)
	RenderLoop(delay, period time.Duration, render func(duration time.Duration) bool)
	Fill(row, column int, message string)
	FillColor(row, column int, color string, message string)
	Size() (columns, rows int)
}
