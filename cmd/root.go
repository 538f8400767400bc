package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sched "github.com/reservoir-sim/reservoir-sim/sched"
)

var (
	// CLI flags for deck replay
	deckPath string // Path to the YAML deck file
	logLevel string // Log verbosity level
	units    string // Unit convention override (METRIC, FIELD)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "reservoir-sim",
	Short: "Schedule-section keyword engine for reservoir simulation decks",
}

// runCmd replays a deck file through the schedule timeline and prints a
// summary of the resulting control state.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a deck file through the schedule",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if deckPath == "" {
			logrus.Fatalf("Deck file not provided. Exiting.")
		}

		deck, err := LoadDeck(deckPath)
		if err != nil {
			logrus.Fatalf("unable to read deck file; %v", err)
		}
		if units != "" {
			deck.Units = units
		}
		unitSystem, err := deck.UnitSystem()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		parseContext, err := deck.ParseContext()
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting schedule replay of %s with %d report steps, units=%s",
			deckPath, len(deck.Steps), unitSystem.Name())

		startTime := time.Now()
		guard := sched.NewErrorGuard()
		schedule := sched.NewSchedule(unitSystem, *parseContext, guard)

		for n, step := range deck.Steps {
			if n > 0 {
				schedule.NextReportStep(step.Days)
			}
			keywords := make([]sched.DeckKeyword, 0, len(step.Keywords))
			for _, keyword := range step.Keywords {
				keywords = append(keywords, keyword.Build(unitSystem))
			}
			update := sched.NewSimulatorUpdate()
			if err := schedule.ApplyKeywords(keywords, update); err != nil {
				logrus.Fatalf("Report step %d failed: %v", n, err)
			}
			logrus.Debugf("Report step %d: %d keywords, %d affected wells",
				n, len(keywords), len(update.AffectedWells))
			if code, ok := schedule.ExitCode(); ok {
				logrus.Infof("Deck requested exit with status %d", code)
				os.Exit(code)
			}
		}

		state := schedule.State()
		logrus.Infof("Replay complete in %v: %d report steps, %d wells, %d groups, %d warnings",
			time.Since(startTime), schedule.Size(), state.Wells.Len(), state.Groups.Len(),
			guard.WarningCount())
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&deckPath, "deck", "", "Path to the YAML deck file")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&units, "units", "", "Unit convention override (METRIC, FIELD)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
