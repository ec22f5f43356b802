package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"tictactoe/game"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "training", "run-a")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "training"), filepath.Dir(w.Dir()))

	t.Run("runs in the same second get separate directories", func(t *testing.T) {
		other, err := NewWriter(root, "training", "run-b")
		require.NoError(t, err)

		require.NotEqual(t, w.Dir(), other.Dir())
		require.True(t, strings.HasSuffix(other.Dir(), "_run-b"))
	})

	t.Run("config", func(t *testing.T) {
		config := TrainingConfig{TrainEpisodes: 10, EvalEpisodes: 2, LearnRate: 0.01, Discount: 0.9, Seed: 42}

		require.NoError(t, w.WriteConfig(config))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "config.json"))
		require.NoError(t, err)
		var got TrainingConfig
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, config, got)
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		records := []GameRecord{
			{Phase: "vs_random", Game: 0, GameMetric: GameMetric{ID: "a", StartingSide: game.Circle, Winner: game.Circle, StartTime: start, EndTime: start, TotalMoves: 5}},
			{Phase: "vs_random", Game: 1, GameMetric: GameMetric{ID: "b", StartingSide: game.Cross, Winner: game.Empty, StartTime: start, EndTime: start, TotalMoves: 9, InvalidDraws: 3}},
		}

		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 3, "Header plus one row per record")
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"a", "vs_random", "0", "O", "O"}, rows[1][:5])
		require.Equal(t, []string{"b", "vs_random", "1", "X", "_"}, rows[2][:5])
		require.Equal(t, "3", rows[2][9])
	})

	t.Run("summary", func(t *testing.T) {
		tallies := []Tally{{Phase: "head_to_head", Wins: 3, Losses: 1, Ties: 6, InvalidDraws: 2}}

		require.NoError(t, w.WriteSummary(tallies))

		rows := readCSV(t, filepath.Join(w.Dir(), "summary.csv"))
		require.Equal(t, [][]string{
			{"phase", "wins", "losses", "ties", "invalid_draws"},
			{"head_to_head", "3", "1", "6", "2"},
		}, rows)
	})
}
