package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// AgentConfig describes one side of a showdown.
type AgentConfig struct {
	ID         int
	Name       string
	Kind       string // wakasagi, random, greedy or remote
	URL        string // Agent server for remote agents
	MoveBudget time.Duration
	Config     string // YAML parameter file, empty for defaults
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing red
	Agent2 int // AgentConfig.ID playing black
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> for the records of one run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
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
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "url", "move_budget", "config"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			config.URL,
			config.MoveBudget.String(),
			config.Config,
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "move", "engine", "duration", "episodes", "rollouts", "full_playouts", "nodes", "depth", "repetition"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
			record.Engine,
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Rollouts),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Depth),
			strconv.FormatBool(record.Repetition),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

type GameRow struct {
	ID             int64  `parquet:"id"`
	Agent1         int64  `parquet:"agent1"`
	Agent2         int64  `parquet:"agent2"`
	StartingPlayer string `parquet:"starting_player,dict"`
	Winner         string `parquet:"winner,dict"`
	StartUnixMs    int64  `parquet:"start_unix_ms"`
	DurationMs     int64  `parquet:"duration_ms"`
	TotalMoves     int32  `parquet:"total_moves"`
}

type MoveRow struct {
	Game         int64  `parquet:"game"`
	Step         int32  `parquet:"step"`
	Player       string `parquet:"player,dict"`
	Move         string `parquet:"move"`
	Engine       string `parquet:"engine,dict"`
	DurationUs   int64  `parquet:"duration_us"`
	Episodes     int32  `parquet:"episodes"`
	Rollouts     int32  `parquet:"rollouts"`
	FullPlayouts int32  `parquet:"full_playouts"`
	Nodes        int32  `parquet:"nodes"`
	Depth        int32  `parquet:"depth"`
	Repetition   bool   `parquet:"repetition"`
}

// WriteParquet stores the same records as the CSV files in columnar form.
func (w *Writer) WriteParquet(games []GameRecord, moves []MoveRecord) error {
	gameRows := make([]GameRow, len(games))
	for i, g := range games {
		gameRows[i] = GameRow{
			ID:             int64(g.ID),
			Agent1:         int64(g.Agent1),
			Agent2:         int64(g.Agent2),
			StartingPlayer: g.StartingPlayer,
			Winner:         g.Winner,
			StartUnixMs:    g.StartTime.UnixMilli(),
			DurationMs:     g.Duration.Milliseconds(),
			TotalMoves:     int32(g.TotalMoves),
		}
	}
	moveRows := make([]MoveRow, len(moves))
	for i, m := range moves {
		moveRows[i] = MoveRow{
			Game:         int64(m.Game),
			Step:         int32(m.Step),
			Player:       m.Player,
			Move:         m.Move,
			Engine:       m.Engine,
			DurationUs:   m.Duration.Microseconds(),
			Episodes:     int32(m.Episodes),
			Rollouts:     int32(m.Rollouts),
			FullPlayouts: int32(m.FullPlayouts),
			Nodes:        int32(m.Nodes),
			Depth:        int32(m.Depth),
			Repetition:   m.Repetition,
		}
	}

	if err := writeParquet(filepath.Join(w.baseDir, "game_records.parquet"), gameRows, "game_record_v1"); err != nil {
		return err
	}
	return writeParquet(filepath.Join(w.baseDir, "move_records.parquet"), moveRows, "move_record_v1")
}

func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
