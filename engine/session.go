package engine

import (
	"fmt"
	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Starter picks the side that opens a game.
type Starter func() game.Side

type Option func(s *Session)

// Session lets two agents play games against each other and hands them the
// experiences gained. A session owns its environment and is not safe for
// concurrent use; parallel self-play needs independent sessions and agents.
type Session struct {
	players      [2]agent.Agent
	env          *game.Env
	rng          *rand.Rand
	starter      Starter
	metrics      metrics.Collector
	lastGame     metrics.GameMetric
	invalidDraws int
}

func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithStarter overrides the uniformly random choice of the opening side.
func WithStarter(starter Starter) Option {
	return func(s *Session) {
		if starter != nil {
			s.starter = starter
		}
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(s *Session) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// RandomStarter picks circle or cross uniformly.
func RandomStarter(rng *rand.Rand) Starter {
	sides := [2]game.Side{game.Circle, game.Cross}
	return func() game.Side {
		return sides[rng.Intn(len(sides))]
	}
}

// FixedStarter always opens with the given side.
func FixedStarter(side game.Side) Starter {
	return func() game.Side {
		return side
	}
}

func NewSession(player1, player2 agent.Agent, options ...Option) *Session {
	if player1.Side() == game.Empty || player2.Side() == game.Empty {
		panic("agents need a side to play")
	}
	if player1.Side() == player2.Side() {
		panic("agents must play opposite sides")
	}

	s := &Session{ // Default values
		players: [2]agent.Agent{player1, player2},
		env:     game.NewEnv(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if s.starter == nil {
		s.starter = RandomStarter(s.rng)
	}
	return s
}

// PlayGame plays one game to the end and returns the accepted actions in
// order and the winner, Empty for a draw.
//
// An agent that keeps proposing moves onto occupied cells is asked again
// forever; agents must eventually propose a legal move.
func (s *Session) PlayGame() ([]game.Action, game.Side) {
	state := s.env.Reset()
	acting := s.starter()
	s.metrics.Start(acting)

	log.Debug().Msgf("side %s is starting", acting)

	actions := []game.Action{}
	states := []game.State{state}

	for !state.IsGameOver() {
		player := s.playerFor(acting)
		action := s.selectAction(player, state)
		state = s.env.Apply(action)
		s.metrics.AddMove()

		states = append(states, state)
		actions = append(actions, action)

		// The outcome of an action is known once the following state is
		// observed, so experiences lag by one action. The opening action never
		// produces one.
		if len(states) > 2 && player.IsTrainable() {
			after := state
			player.Train(game.Experience{
				Before:   states[len(states)-3],
				After:    &after,
				Action:   actions[len(actions)-2],
				Reward:   Reward(state),
				Terminal: state.IsGameOver(),
			})
			s.metrics.AddExperience()
		}

		acting = acting.Opponent()
	}

	winner := state.GameOutcome()
	s.lastGame = s.metrics.Complete(winner)

	log.Debug().Msgf("game over after %d actions %v, winner: %s\n%s", len(actions), actions, winner, state)

	return actions, winner
}

// selectAction asks the player until it proposes a move onto an empty cell.
// Rejected moves of trainable players become penalty experiences, the others
// are only counted.
func (s *Session) selectAction(player agent.Agent, state game.State) game.Action {
	action := s.choose(player, state)
	for !s.env.CanApply(action) {
		if player.IsTrainable() {
			player.Train(game.Experience{
				Before:   state,
				After:    nil,
				Action:   action,
				Reward:   Penalty,
				Terminal: true,
			})
			s.metrics.AddPenalty()
		} else {
			s.invalidDraws++
			s.metrics.AddInvalidDraw()
		}
		action = s.choose(player, state)
	}
	return action
}

func (s *Session) choose(player agent.Agent, state game.State) game.Action {
	action := player.ChooseAction(state)
	if action.Token() != player.Side() {
		panic(fmt.Sprintf("agent playing %s proposed %v", player.Side(), action))
	}
	return action
}

func (s *Session) playerFor(side game.Side) agent.Agent {
	for _, player := range s.players {
		if player.Side() == side {
			return player
		}
	}
	panic(fmt.Sprintf("no agent plays side %s", side))
}

// InvalidDraws counts the rejected moves of agents that are not trainable
// across all games of the session.
func (s *Session) InvalidDraws() int {
	return s.invalidDraws
}

func (s *Session) ResetInvalidDraws() {
	s.invalidDraws = 0
}

// LastGame returns the metrics of the latest game, empty unless a collector
// was configured.
func (s *Session) LastGame() metrics.GameMetric {
	return s.lastGame
}
