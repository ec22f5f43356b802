package metrics

import (
	"tictactoe/game"
	"time"

	"github.com/google/uuid"
)

type GameMetric struct {
	ID           string
	StartingSide game.Side
	Winner       game.Side // Empty for a draw
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
	InvalidDraws int // Rejected moves of agents that are not trainable
	Penalties    int // Rejected moves fed back to trainable agents
	Experiences  int // Progression experiences handed to trainable agents
}

// Collector records one game at a time. Sessions run synchronously, so
// implementations need no locking as long as each session owns its collector.
type Collector interface {
	Start(starter game.Side)
	AddMove()
	AddInvalidDraw()
	AddPenalty()
	AddExperience()
	Complete(winner game.Side) GameMetric
}

type collector struct {
	current GameMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(starter game.Side) {
	c.current = GameMetric{
		ID:           uuid.NewString(),
		StartingSide: starter,
		StartTime:    time.Now(),
	}
}

func (c *collector) AddMove() {
	c.current.TotalMoves++
}

func (c *collector) AddInvalidDraw() {
	c.current.InvalidDraws++
}

func (c *collector) AddPenalty() {
	c.current.Penalties++
}

func (c *collector) AddExperience() {
	c.current.Experiences++
}

func (c *collector) Complete(winner game.Side) GameMetric {
	c.current.Winner = winner
	c.current.EndTime = time.Now()
	c.current.Duration = c.current.EndTime.Sub(c.current.StartTime)
	return c.current
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(starter game.Side)              {}
func (c *dummyCollector) AddMove()                             {}
func (c *dummyCollector) AddInvalidDraw()                      {}
func (c *dummyCollector) AddPenalty()                          {}
func (c *dummyCollector) AddExperience()                       {}
func (c *dummyCollector) Complete(winner game.Side) GameMetric { return GameMetric{} }
