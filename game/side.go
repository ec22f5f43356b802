package game

import "fmt"

// Side is the marker a cell holds, or the marker a player puts down.
type Side uint8

const (
	Empty  Side = iota // 0
	Circle             // 1
	Cross              // 2
)

// Opponent returns the other player's side. Empty has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Circle:
		return Cross
	case Cross:
		return Circle
	default:
		panic(fmt.Sprintf("side %d has no opponent", s))
	}
}

func (s Side) String() string {
	switch s {
	case Empty:
		return "_"
	case Circle:
		return "O"
	case Cross:
		return "X"
	default:
		return "?"
	}
}

func (s Side) valid() bool {
	return s <= Cross
}
