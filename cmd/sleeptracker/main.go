package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sleeptracker",
	Short: "Track how long and how well you sleep",
	Long:  `sleeptracker records when you go to bed and wake up, and how well you slept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(runTUI)
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
