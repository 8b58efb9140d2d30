package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	logLevel   string

	playAnswer   string
	playMaxTurns int

	filterAllowed bool
	filterLimit   int

	verifyLimit     int
	verifyWorkers   int
	verifyPool      string
	verifyReference bool

	rootCmd = &cobra.Command{
		Use:           "wordle",
		Short:         "Wordle feedback engine, candidate pruner and puzzle server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe, // cmd_serve.go
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a puzzle in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPlay, // cmd_play.go
	}

	scoreCmd = &cobra.Command{
		Use:   "score <guess> <solution>",
		Short: "Print the feedback a guess earns against a solution",
		Args:  cobra.ExactArgs(2),
		RunE:  runScore, // cmd_tools.go
	}

	filterCmd = &cobra.Command{
		Use:     "filter <guess=CODE>...",
		Short:   "List the candidates consistent with a guess history",
		Example: "  wordle filter slate=XYYXG maple=XYGGG",
		Args:    cobra.MinimumNArgs(1),
		RunE:    runFilter, // cmd_tools.go
	}

	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Cross-check the pruner against the feedback engine over the word lists",
		Long: `Scores every guess against every solution and checks that the compiled
constraint keeps the solution (|guesses|·|solutions| pairs).

--reference also compares the constraint with full rescoring for every
candidate, which is |guesses|·|solutions|·|candidates| rescorings: about
1.2e10 for the full 2315-word answer list. Combine it with --limit.`,
		Args: cobra.NoArgs,
		RunE: runVerify, // cmd_tools.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides WORDLE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "zerolog level (debug, info, warn, error)")

	playCmd.Flags().StringVar(&playAnswer, "solution", "", "fixed solution instead of a random one")
	playCmd.Flags().IntVar(&playMaxTurns, "max-turns", 0, "turn limit (default from config)")

	filterCmd.Flags().BoolVar(&filterAllowed, "allowed", false, "filter the allowed-guess pool instead of the solutions")
	filterCmd.Flags().IntVar(&filterLimit, "limit", 50, "max candidates to print (0 = all)")

	verifyCmd.Flags().IntVar(&verifyLimit, "limit", 0, "only check the first N guesses (0 = all)")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 0, "parallel workers (default GOMAXPROCS)")
	verifyCmd.Flags().StringVar(&verifyPool, "guesses", "solutions", "guess pool: solutions or allowed")
	verifyCmd.Flags().BoolVar(&verifyReference, "reference", false, "also check equivalence with full rescoring (cubic cost)")

	rootCmd.AddCommand(serveCmd, playCmd, scoreCmd, filterCmd, verifyCmd)
}
