package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arcade/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge a JSON high-score file into the ledger",
	Long: `Reads a high_scores.json file (mode name -> list of records) and merges
its records into the current score storage. Each mode keeps only its best
records afterwards.

Examples:
  snake import ./high_scores.json
  snake import ./high_scores.json --db ~/.snake/other.db`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	src := storage.NewFileStore(args[0])
	scores, err := src.Load()
	if err != nil {
		return err
	}

	l, closeStore := openLedger(cfg, logger)
	defer closeStore()

	if err := l.Merge(scores); err != nil {
		return err
	}

	total := 0
	for mode, recs := range scores {
		total += len(recs)
		logger.Debug("Imported mode", "mode", mode, "records", len(recs))
	}
	fmt.Printf("Imported %d records from %s into %s\n", total, src.Path(), flagDBPath)
	return nil
}
