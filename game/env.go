package game

// Env holds the current state of one game. It is not safe for concurrent use;
// concurrent self-play needs one Env per session.
type Env struct {
	state State
}

func NewEnv() *Env {
	return &Env{}
}

// Reset clears the board.
func (e *Env) Reset() State {
	e.state = 0
	return e.state
}

func (e *Env) State() State {
	return e.state
}

// CanApply reports whether the action targets an empty cell on the board.
// Actions cast from raw bytes may point past the last cell and are refused.
func (e *Env) CanApply(a Action) bool {
	if a.Pos() >= NumCells {
		return false
	}
	return e.state.FieldAt(a.Pos()) == Empty
}

// Apply stores and returns the successor state. Callers check CanApply first.
func (e *Env) Apply(a Action) State {
	e.state = e.state.Apply(a)
	return e.state
}
