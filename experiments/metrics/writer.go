package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type TrainingConfig struct {
	TrainEpisodes       int     `json:"trainEpisodes"`
	EvalEpisodes        int     `json:"evalEpisodes"`
	LearnRate           float64 `json:"learnRate"`
	Discount            float64 `json:"discount"`
	ExplorationRate     float64 `json:"explorationRate"`
	EvalExplorationRate float64 `json:"evalExplorationRate"`
	Seed                uint64  `json:"seed"`
}

type GameRecord struct {
	Phase string
	Game  int // Index within the phase
	GameMetric
}

// Tally sums up an evaluation phase. Against a random agent Wins and Losses
// are seen from the trained agent; head to head they are the wins of the
// opening and of the answering side.
type Tally struct {
	Phase        string
	Wins         int
	Losses       int
	Ties         int
	InvalidDraws int
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>_<runID> for the files of one
// run. The run ID keeps runs started within the same second apart.
func NewWriter(root, name, runID string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp+"_"+runID)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteConfig(config TrainingConfig) error {
	path := filepath.Join(w.baseDir, "config.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "phase", "game", "starting_side", "winner", "start_time", "end_time", "duration", "total_moves", "invalid_draws", "penalties", "experiences"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.Phase,
			strconv.Itoa(record.Game),
			record.StartingSide.String(),
			record.Winner.String(),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.InvalidDraws),
			strconv.Itoa(record.Penalties),
			strconv.Itoa(record.Experiences),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteSummary(tallies []Tally) error {
	header := []string{"phase", "wins", "losses", "ties", "invalid_draws"}
	rows := make([][]string, 0, len(tallies))
	for _, tally := range tallies {
		rows = append(rows, []string{
			tally.Phase,
			strconv.Itoa(tally.Wins),
			strconv.Itoa(tally.Losses),
			strconv.Itoa(tally.Ties),
			strconv.Itoa(tally.InvalidDraws),
		})
	}
	return w.writeCSV("summary.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
