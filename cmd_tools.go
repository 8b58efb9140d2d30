package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/verify"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func runScore(cmd *cobra.Command, args []string) error {
	guess, err := game.ParseWord(args[0], 0)
	if err != nil {
		return err
	}
	sol, err := game.ParseWord(args[1], 0)
	if err != nil {
		return err
	}
	fb, err := game.Generate(guess, sol)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", fb, fb.Numeric())
	return nil
}

// parseHistory turns "guess=CODE" arguments into guess records.
func parseHistory(args []string, length int) ([]game.GuessRecord, error) {
	out := make([]game.GuessRecord, 0, len(args))
	for _, a := range args {
		raw, code, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want guess=CODE", a)
		}
		w, err := game.ParseWord(raw, length)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		fb, err := game.ParseFeedback(code, w.Len())
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		out = append(out, game.GuessRecord{Guess: w, Feedback: fb})
	}
	return out, nil
}

func pool(cat *words.Catalog, name string) (*solver.Universe, error) {
	switch name {
	case "", "solutions":
		return cat.Solutions(), nil
	case "allowed":
		return cat.Allowed(), nil
	}
	return nil, fmt.Errorf("unknown pool %q", name)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	hist, err := parseHistory(args, cat.WordLength())
	if err != nil {
		return err
	}
	u := cat.Solutions()
	if filterAllowed {
		u = cat.Allowed()
	}
	p := u.NewPruner()
	for _, h := range hist {
		if _, err := p.Apply(h.Guess, h.Feedback); err != nil {
			return err
		}
	}
	cands := p.Candidates()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d candidates\n", len(cands))
	for i, w := range cands {
		if filterLimit > 0 && i == filterLimit {
			fmt.Fprintf(out, "... %d more\n", len(cands)-i)
			break
		}
		fmt.Fprintln(out, w)
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	gu, err := pool(cat, verifyPool)
	if err != nil {
		return err
	}
	guesses := gu.Words()
	if verifyLimit > 0 && verifyLimit < len(guesses) {
		guesses = guesses[:verifyLimit]
	}

	bar := progressbar.Default(int64(len(guesses)), "verifying")
	rep, err := verify.Run(cmd.Context(), verify.Options{
		Guesses:   guesses,
		Solutions: cat.Solutions().Words(),
		Reference: verifyReference,
		Workers:   verifyWorkers,
		Progress:  func() { _ = bar.Add(1) },
	})
	_ = bar.Finish()
	if err != nil {
		return err
	}

	log.Info().Int64("pairs", rep.Pairs).Int64("checks", rep.Checks).Int("violations", len(rep.Violations)).Msg("verify finished")
	for _, v := range rep.Violations {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	if !rep.OK() {
		return fmt.Errorf("verify: %d violations (truncated=%t)", len(rep.Violations), rep.Truncated)
	}
	return nil
}
