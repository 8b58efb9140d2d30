// Package verify exhaustively cross-checks the feedback engine and the
// pruner over a word list:
//
//   - inverse consistency: applying generate(g, s) never eliminates s;
//   - reference equivalence (opt-in): the compiled constraint accepts exactly
//     the candidates for which rescoring reproduces the feedback. This costs
//     |guesses|·|solutions|·|candidates| rescorings.
//
// Work fans out one guess per task through an errgroup.
package verify

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

const maxViolations = 20

// Kind classifies a violation.
type Kind string

const (
	KindDropsSolution Kind = "drops_solution"
	KindMismatch      Kind = "reference_mismatch"
)

// Violation is one failing (guess, solution, candidate) triple.
type Violation struct {
	Kind      Kind   `json:"kind"`
	Guess     string `json:"guess"`
	Solution  string `json:"solution"`
	Candidate string `json:"candidate,omitempty"`
	Feedback  string `json:"feedback"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: guess=%s solution=%s feedback=%s candidate=%s", v.Kind, v.Guess, v.Solution, v.Feedback, v.Candidate)
}

// Report summarizes a run.
type Report struct {
	Pairs      int64       `json:"pairs"`  // (guess, solution) pairs scored
	Checks     int64       `json:"checks"` // candidate comparisons
	Violations []Violation `json:"violations"`
	Truncated  bool        `json:"truncated"`
}

// OK reports whether no violation was found.
func (r Report) OK() bool { return len(r.Violations) == 0 && !r.Truncated }

// Options controls a run. Candidates defaults to Solutions and is only
// consulted when Reference is set.
type Options struct {
	Guesses    []game.Word
	Solutions  []game.Word
	Candidates []game.Word
	Reference  bool
	Workers    int
	// Progress, if set, is called once per finished guess.
	Progress func()
}

// Run checks every guess against every solution.
func Run(ctx context.Context, opts Options) (Report, error) {
	cands := opts.Candidates
	if cands == nil {
		cands = opts.Solutions
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		pairs, checks atomic.Int64
		mu            sync.Mutex
		rep           Report
	)
	record := func(v Violation) {
		mu.Lock()
		defer mu.Unlock()
		if len(rep.Violations) >= maxViolations {
			rep.Truncated = true
			return
		}
		rep.Violations = append(rep.Violations, v)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, guess := range opts.Guesses {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, s := range opts.Solutions {
				fb, err := game.Generate(guess, s)
				if err != nil {
					return err
				}
				c, err := solver.Compile(guess, fb)
				if err != nil {
					return err
				}
				pairs.Add(1)
				if !c.Matches(s) {
					record(Violation{Kind: KindDropsSolution, Guess: guess.String(), Solution: s.String(), Feedback: fb.String()})
				}
				if !opts.Reference {
					continue
				}
				for _, w := range cands {
					if c.Matches(w) != solver.Consistent(guess, fb, w) {
						record(Violation{Kind: KindMismatch, Guess: guess.String(), Solution: s.String(), Candidate: w.String(), Feedback: fb.String()})
					}
				}
				checks.Add(int64(len(cands)))
			}
			if opts.Progress != nil {
				opts.Progress()
			}
			return nil
		})
	}
	err := g.Wait()

	rep.Pairs = pairs.Load()
	rep.Checks = checks.Load()
	return rep, err
}
