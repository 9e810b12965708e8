/*
Package solver finds and ranks every dictionary word that can be traced on a board.

A word is traced by starting on any cell and stepping to one of the up to eight
neighbouring cells, never visiting a cell twice. The search is a depth-first
walk pruned by the dictionary: a branch stops as soon as its letters are no
longer the prefix of any word.

	s := solver.New(lex, solver.WithWorkers(4))
	idx := s.Solve(b, mods)    // points -> words for the board as given
	swaps, err := s.ExploreSwaps(ctx, b, mods, nil) // one result per single-letter swap

Results are plain maps; sorting and truncation for display live in Top.
*/
package solver

import (
	"runtime"
	"sync"
	"time"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/board"
	"github.com/charmbracelet/log"
)

// Solver runs board searches against a shared, read-only Dictionary.
// It is safe for concurrent use.
type Solver struct {
	dict        Dictionary
	workers     int
	swapTimeout time.Duration
	log         *log.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers sets how many goroutines search in parallel. Values below 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		s.workers = n
	}
}

// WithSwapTimeout bounds the time Run spends exploring swaps. Zero means no limit.
func WithSwapTimeout(d time.Duration) Option {
	return func(s *Solver) {
		s.swapTimeout = d
	}
}

// WithLogger replaces the solver's logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		s.log = l
	}
}

// New returns a Solver over dict. dict must be fully populated before the
// first search and must not be modified afterwards.
func New(dict Dictionary, opts ...Option) *Solver {
	s := &Solver{
		dict:    dict,
		workers: runtime.GOMAXPROCS(0),
		log:     logger.New("solver"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the configured parallelism.
func (s *Solver) Workers() int {
	return s.workers
}

// Solve searches every starting cell of b in parallel and merges the results.
func (s *Solver) Solve(b board.Board, mods board.Modifiers) ScoreIndex {
	workers := min(s.workers, board.Cells)
	cells := make(chan int, board.Cells)
	for cell := 0; cell < board.Cells; cell++ {
		cells <- cell
	}
	close(cells)

	parts := make([]ScoreIndex, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		parts[i] = make(ScoreIndex)
		wg.Add(1)
		go func(idx ScoreIndex) {
			defer wg.Done()
			for cell := range cells {
				searchCell(b, s.dict, mods, cell, idx)
			}
		}(parts[i])
	}
	wg.Wait()

	result := make(ScoreIndex)
	for _, part := range parts {
		result.Merge(part)
	}
	return result
}
