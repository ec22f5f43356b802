package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	t.Run("reset clears the board", func(t *testing.T) {
		env := NewEnv()
		env.Apply(MustAction(0, Circle))

		state := env.Reset()

		require.Equal(t, State(0), state, "Reset should return the empty state")
		require.Equal(t, State(0), env.State(), "Reset should store the empty state")
	})

	t.Run("apply stores the successor", func(t *testing.T) {
		env := NewEnv()
		env.Reset()

		state := env.Apply(MustAction(4, Cross))

		require.Equal(t, state, env.State())
		require.Equal(t, Cross, state.FieldAt(4))
		require.Equal(t, Cross, state.FirstMover())
	})

	t.Run("can apply only to empty cells", func(t *testing.T) {
		env := NewEnv()
		env.Reset()
		env.Apply(MustAction(4, Cross))
		before := env.State()

		require.False(t, env.CanApply(MustAction(4, Circle)), "Occupied cell should be rejected")
		require.False(t, env.CanApply(MustAction(4, Cross)), "Occupied cell should be rejected for its owner too")
		require.True(t, env.CanApply(MustAction(0, Circle)), "Empty cell should be accepted")
		require.Equal(t, before, env.State(), "CanApply should not mutate the state")
		require.False(t, env.CanApply(Action(255)), "Position past the last cell should be rejected")
		require.False(t, env.CanApply(Action(NumCells<<2|Action(Circle))), "Position past the last cell should be rejected")
	})
}
