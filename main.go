package main

import (
	"flag"
	"fmt"
	"os"
	"tictactoe/experiments"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	defaults := experiments.DefaultConfig()

	trainEpisodes := flag.Int("train", defaults.TrainEpisodes, "Number of self-play games for training")
	evalEpisodes := flag.Int("eval", defaults.EvalEpisodes, "Number of games per evaluation match-up")
	learnRate := flag.Float64("lr", defaults.LearnRate, "Learning rate of the linear models")
	discount := flag.Float64("discount", defaults.Discount, "Discount of the successor estimate")
	explore := flag.Float64("explore", defaults.ExplorationRate, "Exploration rate during training")
	evalExplore := flag.Float64("eval-explore", defaults.EvalExplorationRate, "Exploration rate during evaluation")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the random source")
	output := flag.String("out", "", "Directory for experiment records, none if empty")
	debug := flag.Bool("debug", false, "Log every game")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	config := experiments.DefaultConfig()
	config.TrainEpisodes = *trainEpisodes
	config.EvalEpisodes = *evalEpisodes
	config.LearnRate = *learnRate
	config.Discount = *discount
	config.ExplorationRate = *explore
	config.EvalExplorationRate = *evalExplore
	config.Seed = *seed
	config.OutputDir = *output

	report, err := experiments.RunTraining(config)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	fmt.Printf("run %s\n", report.RunID)
	fmt.Printf("vs. random: wins %d, losses %d, ties %d\n", report.VsRandom.Wins, report.VsRandom.Losses, report.VsRandom.Ties)
	fmt.Printf("head to head: wins 1st action %d, wins 2nd action %d, ties %d, invalid actions %d\n",
		report.HeadToHead.Wins, report.HeadToHead.Losses, report.HeadToHead.Ties, report.HeadToHead.InvalidDraws)
}
