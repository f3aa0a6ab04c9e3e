package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emilianohg/sleeptracker/internal/db"
	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/tracker"
	"github.com/emilianohg/sleeptracker/internal/tui/screens"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start tracking a night of sleep",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runStart(cmd.Context(), a.tracker, a.formatter, cmd.OutOrStdout())
		})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop tracking and optionally rate the night",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		quality, _ := cmd.Flags().GetInt("quality")
		return withApp(func(a *app) error {
			return runStop(cmd.Context(), a.tracker, quality, cmd.OutOrStdout())
		})
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <night-id> <quality>",
	Short: "Rate a night from 0 (very bad) to 5 (excellent)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid night id: %s", args[0])
		}
		quality, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quality: %s (expected 0-5)", args[1])
		}
		return withApp(func(a *app) error {
			if err := a.tracker.RateNight(id, quality).Wait(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Night %d rated: %s\n", id, format.Quality(quality))
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded night",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to delete all nights without --yes")
		}
		return withApp(func(a *app) error {
			return runClear(cmd.Context(), a.tracker, cmd.OutOrStdout())
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the sleep history, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.tracker.Refresh().Wait(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.tracker.State().NightsText)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a night is being tracked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runStatus(cmd.Context(), a.tracker, a.formatter, cmd.OutOrStdout())
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Show the database schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			status, err := db.GetMigrationStatus(a.db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", a.cfg.DatabasePath)
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (latest %d)\n", status.CurrentVersion, status.LatestVersion)
			if status.Dirty {
				fmt.Fprintln(cmd.OutOrStdout(), "Warning: last migration failed, the schema is dirty.")
			}
			return nil
		})
	},
}

func init() {
	stopCmd.Flags().IntP("quality", "r", -1, "Rate the night right away (0-5)")
	clearCmd.Flags().BoolP("yes", "y", false, "Confirm deleting all nights")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runStart(ctx context.Context, t *tracker.Tracker, f format.Formatter, out io.Writer) error {
	if err := t.Refresh().Wait(ctx); err != nil {
		return err
	}
	if current := t.State().Tonight; current != nil {
		fmt.Fprintf(out, "Already tracking night %d since %s\n", current.ID, f.Time(current.Start()))
		return nil
	}

	if err := t.StartTracking().Wait(ctx); err != nil {
		return err
	}
	tonight := t.State().Tonight
	if tonight == nil {
		return fmt.Errorf("night was not recorded")
	}
	fmt.Fprintf(out, "Tracking night %d since %s\n", tonight.ID, f.Time(tonight.Start()))
	return nil
}

// runStop treats a negative quality as "rate later". Any other rating is
// checked before the night is closed.
func runStop(ctx context.Context, t *tracker.Tracker, quality int, out io.Writer) error {
	if quality >= 0 {
		if err := tracker.ValidateQuality(quality); err != nil {
			return err
		}
	}

	if err := t.StopTracking().Wait(ctx); err != nil {
		return err
	}

	var stopped *tracker.Event
	for _, e := range t.DrainEvents() {
		if e.Kind == tracker.EventNavigateToQuality {
			stopped = &e
		}
	}
	if stopped == nil {
		fmt.Fprintln(out, "Not tracking; nothing to stop.")
		return nil
	}

	night := stopped.Night
	fmt.Fprintf(out, "Stopped night %d after %s\n", night.ID, format.Duration(night.Duration()))

	if quality < 0 {
		fmt.Fprintf(out, "Rate it with: sleeptracker rate %d <0-5>\n", night.ID)
		return nil
	}
	if err := t.RateNight(night.ID, quality).Wait(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Quality: %s\n", format.Quality(quality))
	return nil
}

func runClear(ctx context.Context, t *tracker.Tracker, out io.Writer) error {
	if err := t.Clear().Wait(ctx); err != nil {
		return err
	}
	for _, e := range t.DrainEvents() {
		if e.Kind == tracker.EventCleared {
			fmt.Fprintln(out, screens.ClearedMessage)
		}
	}
	return nil
}

func runStatus(ctx context.Context, t *tracker.Tracker, f format.Formatter, out io.Writer) error {
	if err := t.Refresh().Wait(ctx); err != nil {
		return err
	}
	s := t.State()
	if s.Tonight == nil {
		fmt.Fprintf(out, "Not tracking. %d nights recorded.\n", len(s.Nights))
		return nil
	}
	fmt.Fprintf(out, "Tracking night %d since %s\n", s.Tonight.ID, f.Time(s.Tonight.Start()))
	return nil
}
