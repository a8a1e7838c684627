package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "alle",
	Short: "Alle AI from the terminal",
	Long: `alle talks to the Alle AI platform: pick models within your plan,
start conversations, and manage history and projects.

State (selections, history, restrictions) is kept in a local sqlite file
between runs, see ALLE_STATE_DB.

Examples:
  alle models list --type chat
  alle select --type chat gpt-4o claude-3-5-sonnet
  alle chat "Explain photosynthesis" --attach leaf.png
  alle history list -o yaml`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(conversationCmd)
	rootCmd.AddCommand(restrictionsCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, yaml")
	rootCmd.PersistentFlags().String("state", "", "State database (default: ALLE_STATE_DB)")
}
