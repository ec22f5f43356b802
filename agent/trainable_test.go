package agent

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestNewTrainableAgent(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a := NewTrainableAgent(game.Cross, NewModel(newRand()), newRand())

		require.Equal(t, game.Cross, a.Side())
		require.True(t, a.IsTrainable())
		require.Equal(t, 0.1, a.explorationRate)
	})

	t.Run("panics for empty side", func(t *testing.T) {
		require.Panics(t, func() {
			NewTrainableAgent(game.Empty, NewModel(newRand()), newRand())
		})
	})

	t.Run("exploration rate is clipped", func(t *testing.T) {
		a := NewTrainableAgent(game.Circle, NewModel(newRand()), newRand(), WithExplorationRate(3))

		require.Equal(t, 1.0, a.explorationRate)
	})
}

func TestTrainableChooseAction(t *testing.T) {
	t.Run("greedy without exploration", func(t *testing.T) {
		model := NewModel(newRand())
		a := NewTrainableAgent(game.Circle, model, newRand(), WithExplorationRate(0))
		state := game.State(0).Apply(game.MustAction(4, game.Cross))
		scores := model.Predict(state)
		best := 0
		for j := range scores {
			if scores[j] > scores[best] {
				best = j
			}
		}

		got := a.ChooseAction(state)

		require.Equal(t, game.MustAction(best, game.Circle), got)
	})

	t.Run("cross sees the inverted board", func(t *testing.T) {
		model := NewModel(newRand())
		circle := NewTrainableAgent(game.Circle, model, newRand(), WithExplorationRate(0))
		cross := NewTrainableAgent(game.Cross, model, newRand(), WithExplorationRate(0))
		state := game.State(0).Apply(game.MustAction(4, game.Circle))

		require.Equal(t, circle.ChooseAction(state.Invert()).Pos(), cross.ChooseAction(state).Pos())
		require.Equal(t, game.Cross, cross.ChooseAction(state).Token())
	})
}

func TestTrainableTrain(t *testing.T) {
	t.Run("does not mutate the caller's experience", func(t *testing.T) {
		a := NewTrainableAgent(game.Cross, NewModel(newRand()), newRand())
		before := game.State(0).Apply(game.MustAction(4, game.Circle))
		after := before.Apply(game.MustAction(0, game.Cross)).Apply(game.MustAction(8, game.Circle))
		exp := game.Experience{Before: before, After: &after, Action: game.MustAction(0, game.Cross)}
		afterCopy := after

		a.Train(exp)

		require.Equal(t, before, exp.Before)
		require.Equal(t, afterCopy, *exp.After)
	})

	t.Run("frozen agents do not learn", func(t *testing.T) {
		model := NewModel(newRand())
		a := NewTrainableAgent(game.Circle, model, newRand())
		a.SetTrainable(false)
		weights := model.Weights()

		a.Train(game.Experience{Before: game.State(0).Apply(game.MustAction(4, game.Cross)), Action: game.MustAction(0, game.Circle), Reward: -1, Terminal: true})

		require.False(t, a.IsTrainable())
		require.Equal(t, weights, model.Weights())
	})

	t.Run("cross learns on the circle perspective", func(t *testing.T) {
		circleModel := NewModel(newRand())
		crossModel := NewModel(newRand())
		circle := NewTrainableAgent(game.Circle, circleModel, newRand())
		cross := NewTrainableAgent(game.Cross, crossModel, newRand())
		state := game.State(0).Apply(game.MustAction(4, game.Circle))

		cross.Train(game.Experience{Before: state, Action: game.MustAction(0, game.Cross), Reward: 1, Terminal: true})
		circle.Train(game.Experience{Before: state.Invert(), Action: game.MustAction(0, game.Circle), Reward: 1, Terminal: true})

		require.Equal(t, circleModel.Weights(), crossModel.Weights())
		require.Equal(t, circleModel.Biases(), crossModel.Biases())
	})
}
