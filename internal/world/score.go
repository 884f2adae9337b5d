package world

import (
	"go.uber.org/zap"

	"github.com/falldown/falldown/internal/core/event"
	"github.com/falldown/falldown/internal/scripting"
)

// Scorer prices a catch. *scripting.Engine and scripting.Defaults satisfy it.
type Scorer interface {
	CalcScore(ctx scripting.ScoreContext) int
}

// Score is a snapshot of the running totals.
type Score struct {
	Points     int
	Catches    int
	Misses     int
	Streak     int
	BestStreak int
}

// Scoreboard tallies collection outcomes. It receives events through the
// bus, so its totals move when the bus dispatches.
type Scoreboard struct {
	scorer Scorer
	log    *zap.Logger
	score  Score
}

func NewScoreboard(bus *event.Bus, scorer Scorer, log *zap.Logger) *Scoreboard {
	sb := &Scoreboard{scorer: scorer, log: log}
	event.Subscribe(bus, sb.onCollection)
	return sb
}

func (sb *Scoreboard) onCollection(ev CollectionEvent) {
	switch ev.Outcome {
	case Caught:
		pts := sb.scorer.CalcScore(scripting.ScoreContext{
			Streak:  sb.score.Streak,
			Catches: sb.score.Catches,
			Color:   ev.BlockColor.String(),
		})
		sb.score.Points += pts
		sb.score.Catches++
		sb.score.Streak++
		sb.score.BestStreak = max(sb.score.BestStreak, sb.score.Streak)
		sb.log.Info("block caught",
			zap.String("color", ev.BlockColor.DisplayName()),
			zap.Int("points", pts),
			zap.Int("total", sb.score.Points),
			zap.Int("streak", sb.score.Streak),
		)
	case Missed:
		sb.score.Misses++
		sb.score.Streak = 0
		sb.log.Info("wrong color",
			zap.String("player", ev.PlayerColor.DisplayName()),
			zap.String("block", ev.BlockColor.DisplayName()),
			zap.Int("misses", sb.score.Misses),
		)
	}
}

func (sb *Scoreboard) Score() Score { return sb.score }
