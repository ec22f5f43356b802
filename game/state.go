package game

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// State packs a whole board into one integer:
//
//	bits  0-17  nine 2-bit cells, cell i is (row i/3, col i%3)
//	bits 18-19  the side that made the first move, Empty while the board is empty
//
// The side to move is never stored. Turns strictly alternate starting with the
// first mover, so the token counts together with the first mover determine it.
type State uint32

const (
	cellMask        State = 0b11
	circleCells     State = 0x15555 // low bit of each cell
	crossCells      State = 0x2AAAA // high bit of each cell
	lowPairBits     State = 0x55555 // low bit of each cell and of the first-mover field
	highPairBits    State = 0xAAAAA
	firstMoverShift       = 2 * NumCells
)

// Circle masks of the 8 winning lines. The cross mask of a line is the circle
// mask shifted by one, so mask*side selects the right code for either side.
var winLines = [8]State{
	0x00015, // row 0: cells 0 1 2
	0x00540, // row 1: cells 3 4 5
	0x15000, // row 2: cells 6 7 8
	0x01041, // col 0: cells 0 3 6
	0x04104, // col 1: cells 1 4 7
	0x10410, // col 2: cells 2 5 8
	0x10101, // diagonal: cells 0 4 8
	0x01110, // anti-diagonal: cells 2 4 6
}

var ErrCorruptState = errors.New("corrupt board state")

// NewState builds a state from explicit cells and a first mover.
func NewState(firstMover Side, cells [NumCells]Side) (State, error) {
	s := State(firstMover) << firstMoverShift
	for pos, cell := range cells {
		if !cell.valid() {
			return 0, fmt.Errorf("%w: cell %d holds code %d", ErrCorruptState, pos, cell)
		}
		s |= State(cell) << (2 * pos)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// Validate reports encoding invariant violations: unknown cell or first-mover
// codes, unused bits set, a first mover that disagrees with the board being
// empty, or token counts that turns alternating from the first mover cannot
// produce.
func (s State) Validate() error {
	if s>>(firstMoverShift+2) != 0 {
		return fmt.Errorf("%w: unused bits set in %#x", ErrCorruptState, uint32(s))
	}
	for pos := 0; pos < NumCells; pos++ {
		if !s.FieldAt(pos).valid() {
			return fmt.Errorf("%w: cell %d holds code %d", ErrCorruptState, pos, s.FieldAt(pos))
		}
	}
	first := s.FirstMover()
	if !first.valid() {
		return fmt.Errorf("%w: first mover holds code %d", ErrCorruptState, first)
	}
	filled := s.Circles() + s.Crosses()
	if filled > NumCells {
		return fmt.Errorf("%w: %d filled cells", ErrCorruptState, filled)
	}
	if (first == Empty) != (filled == 0) {
		return fmt.Errorf("%w: first mover %s with %d filled cells", ErrCorruptState, first, filled)
	}
	if first != Empty {
		if lead := s.count(first) - s.count(first.Opponent()); lead != 0 && lead != 1 {
			return fmt.Errorf("%w: first mover %s leads by %d tokens", ErrCorruptState, first, lead)
		}
	}
	return nil
}

// FieldAt returns the side occupying cell pos.
func (s State) FieldAt(pos int) Side {
	return Side(s >> (2 * pos) & cellMask)
}

func (s State) FirstMover() Side {
	return Side(s >> firstMoverShift & cellMask)
}

func (s State) Circles() int {
	return bits.OnesCount32(uint32(s & circleCells))
}

func (s State) Crosses() int {
	return bits.OnesCount32(uint32(s & crossCells))
}

func (s State) count(side Side) int {
	if side == Circle {
		return s.Circles()
	}
	return s.Crosses()
}

// IsFirstAction reports whether nothing has been played yet.
func (s State) IsFirstAction() bool {
	return s == 0
}

// LastActingSide infers who moved last. Equal counts mean both sides moved
// equally often, so the second mover acted last; otherwise the first mover
// is one token ahead and acted last. Empty on an empty board.
func (s State) LastActingSide() Side {
	if s.IsFirstAction() {
		return Empty
	}
	first := s.FirstMover()
	if s.Circles() == s.Crosses() {
		return first.Opponent()
	}
	return first
}

// SideToDraw is the side due to act next, Empty on an empty board since
// either side may open.
func (s State) SideToDraw() Side {
	last := s.LastActingSide()
	if last == Empty {
		return Empty
	}
	return last.Opponent()
}

// DidLastActionWin reports whether the side that acted last owns a full line.
func (s State) DidLastActionWin() bool {
	side := s.LastActingSide()
	if side == Empty || s.count(side) < 3 {
		return false
	}
	return s.wins(side)
}

func (s State) wins(side Side) bool {
	for _, line := range winLines {
		mask := line * State(side)
		if s&mask == mask {
			return true
		}
	}
	return false
}

func (s State) AllFieldsOccupied() bool {
	return s.Circles()+s.Crosses() == NumCells
}

func (s State) IsGameOver() bool {
	return !s.IsFirstAction() && (s.AllFieldsOccupied() || s.DidLastActionWin())
}

// GameOutcome returns the winner, or Empty for a draw. The result is only
// meaningful once IsGameOver holds.
func (s State) GameOutcome() Side {
	if s.DidLastActionWin() {
		return s.LastActingSide()
	}
	return Empty
}

// Apply returns the successor state. The target cell must be empty; Apply
// does not check and silently corrupts the cell otherwise. Env.CanApply is
// the legality check.
func (s State) Apply(a Action) State {
	token := State(a.Token())
	if s.IsFirstAction() {
		s |= token << firstMoverShift
	}
	return s | token<<(2*a.Pos())
}

// Invert swaps circles and crosses everywhere, first mover included.
// Circle codes live on the low bit of a pair and cross codes on the high bit,
// so swapping the two halves of every pair swaps the sides.
func (s State) Invert() State {
	if s.IsFirstAction() {
		return s
	}
	return (s&lowPairBits)<<1 | (s&highPairBits)>>1
}

// invertByCell is the cell-by-cell reference for Invert.
func (s State) invertByCell() State {
	if s.IsFirstAction() {
		return s
	}
	inverted := State(s.FirstMover().Opponent()) << firstMoverShift
	for pos := 0; pos < NumCells; pos++ {
		if cell := s.FieldAt(pos); cell != Empty {
			inverted |= State(cell.Opponent()) << (2 * pos)
		}
	}
	return inverted
}

// Board unpacks the cells in row-major order.
func (s State) Board() [NumCells]Side {
	var board [NumCells]Side
	for pos := range board {
		board[pos] = s.FieldAt(pos)
	}
	return board
}

// String renders the board as a 3x3 grid of O, X and _.
func (s State) String() string {
	var sb strings.Builder
	for pos := 0; pos < NumCells; pos++ {
		if pos > 0 && pos%3 == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.FieldAt(pos).String())
	}
	return sb.String()
}
