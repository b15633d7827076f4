package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arcade/internal/games/snake"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows every game mode with its starting speed and special rules under the current config and difficulty.`,
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func runModes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	modes := snake.Modes()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID()))
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", maxIDLen, "ID", "Name", "Tick", "Rules")
	fmt.Printf("  %-*s  %-12s  %-6s  %s\n", maxIDLen, "--", "----", "----", "-----")

	for _, m := range modes {
		pol := snake.PolicyFor(m, cfg)
		fmt.Printf("  %-*s  %-12s  %-6s  %s\n",
			maxIDLen, m.ID(), m.String(),
			fmt.Sprintf("%dms", pol.Interval.Milliseconds()),
			describeRules(m, pol),
		)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --mode <id>' to play a mode.")
	return nil
}

// describeRules summarizes what a policy changes.
func describeRules(m snake.Mode, pol snake.Policy) string {
	rules := []string{m.Description()}
	if pol.SpeedRamp {
		rules = append(rules, fmt.Sprintf("-%dms per food down to %dms",
			pol.SpeedStep.Milliseconds(), pol.MinInterval.Milliseconds()))
	}
	if pol.Timed() {
		rules = append(rules, fmt.Sprintf("%s limit", pol.TimeLimit))
	}
	if pol.Wrap {
		rules = append(rules, "edges wrap")
	}
	return strings.Join(rules, "; ")
}
