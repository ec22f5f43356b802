package game

import (
	"errors"
	"fmt"
)

const NumCells = 9

var (
	ErrInvalidToken    = errors.New("invalid token: must be either circle or cross")
	ErrInvalidPosition = errors.New("invalid position: must be within [0, 8]")
)

// Action places a token on a cell, packed as (pos << 2) | token.
type Action uint8

// NewAction validates and packs a (position, token) pair.
func NewAction(pos int, token Side) (Action, error) {
	if token != Circle && token != Cross {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidToken, token)
	}
	if pos < 0 || pos >= NumCells {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPosition, pos)
	}
	return Action(pos<<2) | Action(token), nil
}

// MustAction is like NewAction but panics on invalid input.
func MustAction(pos int, token Side) Action {
	a, err := NewAction(pos, token)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Action) Pos() int {
	return int(a >> 2)
}

func (a Action) Token() Side {
	return Side(a & 0b11)
}

func (a Action) String() string {
	return fmt.Sprintf("%s -> %d", a.Token(), a.Pos())
}
