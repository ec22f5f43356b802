package agent

import (
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

type RandomAgent struct {
	side game.Side
	rng  *rand.Rand
}

// NewRandomAgent returns an agent picking any cell uniformly, occupied or not.
func NewRandomAgent(side game.Side, rng *rand.Rand) *RandomAgent {
	mustPlayable(side)
	return &RandomAgent{side: side, rng: rng}
}

func (a *RandomAgent) Side() game.Side {
	return a.side
}

func (a *RandomAgent) IsTrainable() bool {
	return false
}

func (a *RandomAgent) ChooseAction(game.State) game.Action {
	return game.MustAction(a.rng.Intn(game.NumCells), a.side)
}

func (a *RandomAgent) Train(game.Experience) {}
