// Command simulate plays many headless games with a fixed move preference
// and prints per-game results and a summary. It is a quick way to see how a
// simple strategy fares and to exercise the engine outside the terminal UI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/go2048/game/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed    uint64
	Score   int
	Steps   int
	MaxTile int
	Won     bool
	Lost    bool
}

// Summary aggregates a batch of games
type Summary struct {
	Games     int
	Wins      int
	BestScore int
	AvgScore  float64
	AvgSteps  float64
	MaxTiles  map[int]int // max tile -> number of games that reached it as their best
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "simulate",
		Usage:  "Play headless 2048 games with a fixed move preference",
		Writer: stdout,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 100, Usage: "Number of games to play"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Seed of the first game; game i uses seed+i"},
			&cli.StringFlag{Name: "order", Value: "down,left,right,up", Usage: "Move preference, comma separated"},
			&cli.IntFlag{Name: "max-steps", Value: 100000, Usage: "Stop a game after this many steps"},
			&cli.BoolFlag{Name: "verbose", Usage: "Print every game"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			order, err := parseOrder(cmd.String("order"))
			if err != nil {
				return err
			}
			games := cmd.Int("games")
			if games < 1 {
				return fmt.Errorf("games must be at least 1, got %d", games)
			}

			seed := uint64(cmd.Int64("seed"))
			results := make([]GameResult, 0, games)
			for i := 0; i < games; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				result := playGame(seed+uint64(i), order, cmd.Int("max-steps"))
				if cmd.Bool("verbose") {
					printResult(stdout, result)
				}
				results = append(results, result)
			}

			printSummary(stdout, summarize(results))
			return nil
		},
	}
}

// parseOrder parses a comma separated move preference
func parseOrder(s string) ([]engine.Direction, error) {
	var order []engine.Direction
	seen := map[engine.Direction]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		dir, err := engine.ParseDirection(part)
		if err != nil {
			return nil, err
		}
		if seen[dir] {
			return nil, fmt.Errorf("direction %s listed twice", dir)
		}
		seen[dir] = true
		order = append(order, dir)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("order needs at least one direction")
	}
	return order, nil
}

// playGame plays until no preferred move changes the board or maxSteps is reached.
// Directions missing from order are never played.
func playGame(seed uint64, order []engine.Direction, maxSteps int) GameResult {
	e := engine.NewEngine(engine.NewSeededSource(seed))

	for e.GetSteps() < maxSteps && !e.IsGameOver() {
		moved := false
		for _, dir := range order {
			if !e.CanMove(dir) {
				continue
			}
			if _, err := e.Move(dir); err != nil {
				break
			}
			moved = true
			break
		}
		if !moved {
			break
		}
	}

	return resultOf(seed, e.GetState())
}

// resultOf counts a game as won once it reached 2048, even if that tile
// later merged into a larger one.
func resultOf(seed uint64, state *engine.GameState) GameResult {
	return GameResult{
		Seed:    seed,
		Score:   state.Score,
		Steps:   state.Steps,
		MaxTile: state.MaxTile,
		Won:     state.MaxTile >= engine.WinningTile,
		Lost:    state.GameOver,
	}
}

func summarize(results []GameResult) Summary {
	s := Summary{Games: len(results), MaxTiles: map[int]int{}}
	if len(results) == 0 {
		return s
	}

	totalScore, totalSteps := 0, 0
	for _, r := range results {
		if r.Won {
			s.Wins++
		}
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
		totalScore += r.Score
		totalSteps += r.Steps
		s.MaxTiles[r.MaxTile]++
	}
	s.AvgScore = float64(totalScore) / float64(len(results))
	s.AvgSteps = float64(totalSteps) / float64(len(results))
	return s
}

func printResult(w io.Writer, r GameResult) {
	p := message.NewPrinter(language.English)
	status := "stuck"
	switch {
	case r.Won:
		status = "won"
	case r.Lost:
		status = "lost"
	}
	p.Fprintf(w, "seed %d: score %d, steps %d, max tile %d (%s)\n", r.Seed, r.Score, r.Steps, r.MaxTile, status)
}

func printSummary(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "\n=== %d games ===\n", s.Games)
	p.Fprintf(w, "Win rate: %.1f%% (%d wins)\n", 100*float64(s.Wins)/float64(s.Games), s.Wins)
	p.Fprintf(w, "Best score: %d\n", s.BestScore)
	p.Fprintf(w, "Average score: %.1f\n", s.AvgScore)
	p.Fprintf(w, "Average steps: %.1f\n", s.AvgSteps)

	tiles := make([]int, 0, len(s.MaxTiles))
	for tile := range s.MaxTiles {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Fprintln(w, "Max tile reached:")
	for _, tile := range tiles {
		p.Fprintf(w, "  %6d: %d\n", tile, s.MaxTiles[tile])
	}
}
