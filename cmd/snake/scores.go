package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
	"github.com/vovakirdan/snake-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the high-score table for one mode, or for every mode when
none is given.

Examples:
  snake scores
  snake scores zen
  snake scores "Time Attack" --limit 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", ledger.DefaultKeep, "Number of scores to show per mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	modes := snake.Modes()
	if len(args) == 1 {
		mode, err := snake.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []snake.Mode{mode}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores storage: %w", err)
	}
	defer store.Close()

	return writeScores(cmd.OutOrStdout(), store, modes, flagScoresLimit)
}

// writeScores prints one table per mode, querying the store directly.
func writeScores(w io.Writer, store storage.Backend, modes []snake.Mode, limit int) error {
	for i, mode := range modes {
		recs, err := store.TopScores(mode.String(), limit)
		if err != nil {
			return fmt.Errorf("cannot read %s scores: %w", mode, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		printTable(w, mode, recs)
	}
	return nil
}

func printTable(w io.Writer, mode snake.Mode, recs []ledger.Record) {
	fmt.Fprintf(w, "High Scores - %s\n", mode)
	fmt.Fprintln(w)

	if len(recs) == 0 {
		fmt.Fprintln(w, "  No scores recorded yet.")
		fmt.Fprintf(w, "  Play 'snake play --mode %s' to set the first high score!\n", mode.ID())
		return
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-6s  %-5s  %-6s  %s\n", "Rank", "Score", "Length", "Food", "Moves", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-6s  %-5s  %-6s  %s\n", "----", "-----", "------", "----", "-----", "----")

	for i, r := range recs {
		fmt.Fprintf(w, "  %-4d  %-7d  %-6d  %-5d  %-6d  %s\n", i+1, r.Score, r.Length, r.Food, r.Moves, r.Date)
	}
}
