package agent

import (
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/utils"

	"golang.org/x/exp/rand"
)

type ModelOption func(m *Model)

// Model is a linear predictor of one score per cell, seen from the circle
// side. It is not safe for concurrent use.
type Model struct {
	weights   [game.NumCells][game.NumCells]float64 // [input cell][action cell]
	biases    [game.NumCells]float64
	learnRate float64
	discount  float64
}

func WithLearnRate(rate float64) ModelOption {
	return func(m *Model) {
		if rate > 0 {
			m.learnRate = rate
		}
	}
}

func WithDiscount(discount float64) ModelOption {
	return func(m *Model) {
		if discount >= 0 && discount <= 1 {
			m.discount = discount
		}
	}
}

// NewModel draws the initial weights and biases from N(0, 0.1).
func NewModel(rng *rand.Rand, options ...ModelOption) *Model {
	m := &Model{ // Default values
		learnRate: meta.LEARN_RATE,
		discount:  meta.REWARD_DISCOUNT,
	}
	for _, option := range options {
		option(m)
	}
	for i := range m.weights {
		for j := range m.weights[i] {
			m.weights[i][j] = rng.NormFloat64() * meta.INIT_WEIGHT_STDDEV
		}
		m.biases[i] = rng.NormFloat64() * meta.INIT_WEIGHT_STDDEV
	}
	return m
}

// features encodes circle as 1, cross as -1 and empty as 0.
func features(state game.State) [game.NumCells]float64 {
	var x [game.NumCells]float64
	for pos, cell := range state.Board() {
		switch cell {
		case game.Circle:
			x[pos] = 1
		case game.Cross:
			x[pos] = -1
		}
	}
	return x
}

// Predict scores every cell as the next circle move.
func (m *Model) Predict(state game.State) [game.NumCells]float64 {
	x := features(state)
	scores := m.biases
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j := range scores {
			scores[j] += xi * m.weights[i][j]
		}
	}
	return scores
}

// Train moves the score of the experience's action towards its label: the
// reward when there is no successor to estimate from, otherwise the
// discounted best score of the successor. Only the action's weight column
// and its own bias move; the biases of the other cells are left untouched.
func (m *Model) Train(exp game.Experience) {
	pos := exp.Action.Pos()
	x := features(exp.Before)
	pred := m.Predict(exp.Before)[pos]

	label := exp.Reward
	if exp.After != nil && !exp.After.IsGameOver() {
		next := m.Predict(*exp.After)
		label = m.discount * next[utils.ArgMax(next[:])]
	}

	delta := -2.0 * (label - pred)
	for i, xi := range x {
		m.weights[i][pos] -= utils.Clip(delta*xi, -1, 1) * m.learnRate
	}
	m.biases[pos] -= utils.Clip(delta, -1, 1) * m.learnRate
}

func (m *Model) Weights() [game.NumCells][game.NumCells]float64 {
	return m.weights
}

func (m *Model) Biases() [game.NumCells]float64 {
	return m.biases
}
