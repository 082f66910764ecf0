package theme

import (
	"strings"

	"git.lost.host/meutraa/onbeat/internal/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	beatSym     = "●"
	downbeatSym = "⬤"
	missSym     = "✗"
	offBeatSym  = "·"

	judgementWidth = 12
)

var (
	beatColors = map[bool]lipgloss.Color{
		true:  "#EC1E00", // downbeat red
		false: "#0076EC", // blue
	}
	dim     = lipgloss.Color("#6A6A6A")
	missRed = lipgloss.Color("#FF0000")
)

type DefaultTheme struct {
}

// RenderBeat draws the pulse for a beat, lit while it is the current beat.
func (t *DefaultTheme) RenderBeat(beat int, lit bool) string {
	down := game.Downbeat(beat)
	sym := beatSym
	if down {
		sym = downbeatSym
	}
	style := lipgloss.NewStyle().Foreground(dim)
	if lit {
		style = style.Foreground(beatColors[down]).Bold(true)
	}
	return style.Render(sym)
}

func (t *DefaultTheme) RenderJudgement(judgement *game.Judgement) string {
	if nil == judgement {
		return strings.Repeat(" ", judgementWidth)
	}
	return lipgloss.NewStyle().Width(judgementWidth).Align(lipgloss.Center).Foreground(lipgloss.Color(judgement.Color)).Bold(true).Render(judgement.Name)
}

func (t *DefaultTheme) RenderOffBeat() string {
	return lipgloss.NewStyle().Foreground(dim).Render(offBeatSym)
}

func (t *DefaultTheme) RenderMiss() string {
	return lipgloss.NewStyle().Foreground(missRed).Bold(true).Render(missSym)
}
