// main.go
//
// Entry point for the wordle solver binary.
//   - Loads configuration (defaults → .env → WORDLE_CONFIG yaml → env).
//   - Sets up zerolog (console output on a TTY-style writer).
//   - Dispatches to the cobra subcommands in commands.go.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solved"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// cfg is resolved once in the root PersistentPreRunE.
var cfg config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("WORDLE_CONFIG", configPath); err != nil {
				return err
			}
		}
		c, err := config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.LogLevel = logLevel
		}
		cfg = c
		setupLogging(cfg.LogLevel)
		return nil
	}
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// loadCatalog reads the configured word lists.
func loadCatalog() (*words.Catalog, error) {
	cat, err := words.Load(words.Source{
		AnswersFile: cfg.AnswersFile,
		AllowedFile: cfg.AllowedFile,
		Length:      cfg.WordLength,
	})
	if err != nil {
		return nil, err
	}
	a, g := cat.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Int("length", cat.WordLength()).Msg("word lists loaded")
	return cat, nil
}

// openStore opens the SQLite store, or returns nil when no DB path is set.
func openStore(cmd *cobra.Command) (*solved.Store, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	return solved.Open(cmd.Context(), cfg.DBPath)
}
