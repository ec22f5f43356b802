package agent

import "tictactoe/game"

// Agent is one of the two players of a session.
type Agent interface {
	Side() game.Side
	// IsTrainable decides whether the session feeds experiences to Train
	// or only counts the agent's invalid draws.
	IsTrainable() bool
	// ChooseAction may return an action onto an occupied cell; the session
	// asks again until the action is legal.
	ChooseAction(state game.State) game.Action
	Train(exp game.Experience)
}

func mustPlayable(side game.Side) {
	if side != game.Circle && side != game.Cross {
		panic("agent side must be circle or cross")
	}
}
