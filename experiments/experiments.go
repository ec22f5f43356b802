package experiments

import (
	"fmt"
	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	VsRandomPhase   = "vs_random"
	HeadToHeadPhase = "head_to_head"
)

type Config struct {
	metrics.TrainingConfig
	OutputDir string // Records are only written when set
}

type Report struct {
	RunID      string
	VsRandom   metrics.Tally
	HeadToHead metrics.Tally
	Players    [2]*agent.TrainableAgent
}

func DefaultConfig() Config {
	return Config{
		TrainingConfig: metrics.TrainingConfig{
			TrainEpisodes:       meta.TRAIN_EPISODES,
			EvalEpisodes:        meta.EVAL_EPISODES,
			LearnRate:           meta.LEARN_RATE,
			Discount:            meta.REWARD_DISCOUNT,
			ExplorationRate:     meta.EXPLORATION_RATE,
			EvalExplorationRate: meta.EVAL_EXPLORATION_RATE,
		},
	}
}

func (c Config) validate() error {
	if c.TrainEpisodes < 0 || c.EvalEpisodes < 0 {
		return fmt.Errorf("episodes must not be negative: train=%d eval=%d", c.TrainEpisodes, c.EvalEpisodes)
	}
	// Frozen agents only escape an occupied favourite cell by exploring.
	if c.EvalEpisodes > 0 && c.EvalExplorationRate <= 0 {
		return fmt.Errorf("evaluation exploration rate must be positive, got %v", c.EvalExplorationRate)
	}
	return nil
}

// RunTraining trains two agents by self-play, freezes them, then checks
// whether they learned to win against random play and to defend against
// each other.
func RunTraining(config Config) (Report, error) {
	if err := config.validate(); err != nil {
		return Report{}, err
	}

	report := Report{RunID: uuid.NewString()}
	rng := rand.New(rand.NewSource(config.Seed))

	player1 := newPlayer(game.Circle, config, rng)
	player2 := newPlayer(game.Cross, config, rng)
	report.Players = [2]*agent.TrainableAgent{player1, player2}

	log.Info().Msgf("starting training run %s for %d episodes...", report.RunID, config.TrainEpisodes)

	session := engine.NewSession(player1, player2, engine.WithRand(rng))
	step := max(config.TrainEpisodes/10, 1)
	for i := 0; i < config.TrainEpisodes; i++ {
		session.PlayGame()
		if (i+1)%step == 0 {
			log.Info().Msgf("trained %d of %d episodes", i+1, config.TrainEpisodes)
		}
	}

	log.Info().Msg("completed training")
	for _, player := range report.Players {
		log.Debug().Msgf("player %s, weights=%v, biases=%v", player.Side(), player.Model().Weights(), player.Model().Biases())
	}

	for _, player := range report.Players {
		player.SetTrainable(false)
		player.SetExplorationRate(config.EvalExplorationRate)
	}

	collector := metrics.NewCollector()
	records := []metrics.GameRecord{}

	log.Info().Msg("testing if the players know how to win vs. random play...")

	report.VsRandom = metrics.Tally{Phase: VsRandomPhase}
	random := agent.NewRandomAgent(player1.Side().Opponent(), rng)
	vsRandom := engine.NewSession(player1, random, engine.WithRand(rng), engine.WithCollector(collector))
	for i := 0; i < config.EvalEpisodes; i++ {
		_, winner := vsRandom.PlayGame()
		switch winner {
		case game.Empty:
			report.VsRandom.Ties++
		case player1.Side():
			report.VsRandom.Wins++
		default:
			report.VsRandom.Losses++
		}
		records = append(records, metrics.GameRecord{Phase: VsRandomPhase, Game: i, GameMetric: vsRandom.LastGame()})
	}
	report.VsRandom.InvalidDraws = vsRandom.InvalidDraws()

	log.Info().Msgf("wins: %d, losses: %d, ties: %d", report.VsRandom.Wins, report.VsRandom.Losses, report.VsRandom.Ties)
	log.Info().Msg("testing if the players know how to defend vs. a good player...")

	report.HeadToHead = metrics.Tally{Phase: HeadToHeadPhase}
	headToHead := engine.NewSession(player1, player2, engine.WithRand(rng), engine.WithCollector(collector))
	for i := 0; i < config.EvalEpisodes; i++ {
		actions, winner := headToHead.PlayGame()
		if i < meta.LOGGED_GAMES {
			log.Info().Msgf("game %d, actions %v, winner: %s", i, actions, winner)
		}
		switch {
		case winner == game.Empty:
			report.HeadToHead.Ties++
		case actions[0].Token() == winner:
			report.HeadToHead.Wins++
		default:
			report.HeadToHead.Losses++
		}
		records = append(records, metrics.GameRecord{Phase: HeadToHeadPhase, Game: i, GameMetric: headToHead.LastGame()})
	}
	report.HeadToHead.InvalidDraws = headToHead.InvalidDraws()

	log.Info().Msgf("wins 1st action: %d, wins 2nd action: %d, ties: %d", report.HeadToHead.Wins, report.HeadToHead.Losses, report.HeadToHead.Ties)
	log.Info().Msgf("players selected %d invalid actions", report.HeadToHead.InvalidDraws)

	if config.OutputDir == "" {
		return report, nil
	}
	if err := store(config, records, report); err != nil {
		return report, err
	}
	return report, nil
}

func newPlayer(side game.Side, config Config, rng *rand.Rand) *agent.TrainableAgent {
	model := agent.NewModel(rng, agent.WithLearnRate(config.LearnRate), agent.WithDiscount(config.Discount))
	return agent.NewTrainableAgent(side, model, rng, agent.WithExplorationRate(config.ExplorationRate))
}

func store(config Config, records []metrics.GameRecord, report Report) error {
	writer, err := metrics.NewWriter(config.OutputDir, "training", report.RunID)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteConfig(config.TrainingConfig); err != nil {
		return fmt.Errorf("failed to store config: %w", err)
	}
	log.Info().Msg("stored config")

	if err := writer.WriteGameRecords(records); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteSummary([]metrics.Tally{report.VsRandom, report.HeadToHead}); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msgf("stored summary in %s", writer.Dir())
	return nil
}
