package game

// Experience is one training sample handed to the acting agent.
// After is nil when the action produced no board, as for a rejected move.
type Experience struct {
	Before   State
	After    *State
	Action   Action
	Reward   float64
	Terminal bool
}
