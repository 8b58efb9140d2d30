package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solved"
)

func runPlay(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	answer := cat.RandomSolution()
	if playAnswer != "" {
		if answer, err = game.ParseWord(playAnswer, cat.WordLength()); err != nil {
			return err
		}
	}
	turns := cfg.MaxTurns
	if playMaxTurns > 0 {
		turns = playMaxTurns
	}
	opts := []game.Option{game.WithMaxTurns(turns)}
	if cfg.StrictGuesses {
		opts = append(opts, game.WithDictionary(cat))
	}
	g := game.NewSession(answer, opts...)

	if err := playLoop(cmd.InOrStdin(), cmd.OutOrStdout(), g); err != nil {
		return err
	}
	if !g.Solved() {
		return nil
	}

	db, err := openStore(cmd)
	if err != nil {
		log.Warn().Err(err).Msg("open store")
		return nil
	}
	if db == nil {
		return nil
	}
	defer db.Close()
	err = db.RecordSolved(cmd.Context(), solved.Solve{Word: g.Solution().String(), Mode: "cli", Guesses: g.Turns()})
	if err != nil {
		log.Warn().Err(err).Msg("record solved word")
	}
	return nil
}

// playLoop reads guesses line by line until the session ends or input runs
// out. Rejected guesses are reported and do not use a turn.
func playLoop(in io.Reader, out io.Writer, g *game.Session) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "Guess the %d-letter word in %d turns.\n", g.WordLength(), g.MaxTurns())
	for !g.Over() {
		fmt.Fprintf(out, "[%d/%d] > ", g.Turns()+1, g.MaxTurns())
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := g.Submit(line)
		switch {
		case errors.Is(err, game.ErrSessionOver):
			return nil
		case err != nil:
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		fmt.Fprintf(out, "  %s  %s\n", rec.Guess, rec.Feedback)
	}
	if g.Solved() {
		fmt.Fprintf(out, "Solved in %d.\n", g.Turns())
	} else {
		fmt.Fprintf(out, "Out of turns. The word was %s.\n", g.Solution())
	}
	return nil
}
