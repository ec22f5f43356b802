// meta/meta.go
package meta

// TRAIN_EPISODES defines the number of self-play games used for training.
const TRAIN_EPISODES = 2_000_000

// EVAL_EPISODES defines the number of games per evaluation match-up.
const EVAL_EPISODES = 100

// LEARN_RATE defines the step size of the linear model's delta rule.
const LEARN_RATE = 0.01

// REWARD_DISCOUNT defines the discount applied to the successor estimate.
const REWARD_DISCOUNT = 0.9

// EXPLORATION_RATE defines the chance of a random move during training.
const EXPLORATION_RATE = 0.1

// EVAL_EXPLORATION_RATE defines the chance of a random move during evaluation.
const EVAL_EXPLORATION_RATE = 0.01

// INIT_WEIGHT_STDDEV defines the spread of the model's initial weights.
const INIT_WEIGHT_STDDEV = 0.1

// LOGGED_GAMES defines how many head-to-head games are logged in full.
const LOGGED_GAMES = 10
