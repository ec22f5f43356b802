package engine

import "tictactoe/game"

const (
	Win     = 1.0
	Draw    = 0.5
	Ongoing = 0.0
	Penalty = -1.0 // Reward for a move onto an occupied cell
)

// Reward scores the state reached by an action. No discounting is applied.
func Reward(state game.State) float64 {
	if state.IsGameOver() {
		if state.DidLastActionWin() {
			return Win
		}
		return Draw
	}
	return Ongoing
}
