package agent

import (
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/utils"

	"golang.org/x/exp/rand"
)

type TrainableOption func(a *TrainableAgent)

// TrainableAgent plays greedily on its model's scores, exploring at random
// with a fixed rate. States are normalised so the model always plays circle,
// which lets one model serve either side.
type TrainableAgent struct {
	side            game.Side
	model           *Model
	rng             *rand.Rand
	explorationRate float64
	trainable       bool
}

func WithExplorationRate(rate float64) TrainableOption {
	return func(a *TrainableAgent) {
		a.SetExplorationRate(rate)
	}
}

func NewTrainableAgent(side game.Side, model *Model, rng *rand.Rand, options ...TrainableOption) *TrainableAgent {
	mustPlayable(side)
	a := &TrainableAgent{
		side:            side,
		model:           model,
		rng:             rng,
		explorationRate: meta.EXPLORATION_RATE,
		trainable:       true,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *TrainableAgent) Side() game.Side {
	return a.side
}

func (a *TrainableAgent) IsTrainable() bool {
	return a.trainable
}

// SetTrainable freezes or unfreezes the model.
func (a *TrainableAgent) SetTrainable(trainable bool) {
	a.trainable = trainable
}

func (a *TrainableAgent) SetExplorationRate(rate float64) {
	a.explorationRate = utils.Clip(rate, 0, 1)
}

func (a *TrainableAgent) Model() *Model {
	return a.model
}

func (a *TrainableAgent) ChooseAction(state game.State) game.Action {
	scores := a.model.Predict(a.normalize(state))
	pos := utils.ArgMax(scores[:])
	if a.rng.Float64() < a.explorationRate {
		pos = a.rng.Intn(game.NumCells)
	}
	return game.MustAction(pos, a.side)
}

func (a *TrainableAgent) Train(exp game.Experience) {
	if !a.trainable {
		return
	}
	exp.Before = a.normalize(exp.Before)
	if exp.After != nil {
		after := a.normalize(*exp.After)
		exp.After = &after
	}
	a.model.Train(exp)
}

func (a *TrainableAgent) normalize(state game.State) game.State {
	if a.side == game.Cross {
		return state.Invert()
	}
	return state
}
