package theme

import "git.lost.host/meutraa/onbeat/internal/game"

type Theme interface {
	RenderBeat(beat int, lit bool) string
	RenderJudgement(judgement *game.Judgement) string
	RenderOffBeat() string
	RenderMiss() string
}
