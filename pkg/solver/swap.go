package solver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bastiangx/spellserve/pkg/board"
)

// SwapLabel names a single-letter substitution: cell Cell set to Letter.
type SwapLabel struct {
	Cell   int
	Letter byte
}

// Coord returns the swapped cell's coordinate.
func (l SwapLabel) Coord() board.Coord {
	return board.CoordOf(l.Cell)
}

func (l SwapLabel) String() string {
	return fmt.Sprintf("%s->%c", l.Coord(), l.Letter)
}

// Less orders labels by cell, then letter.
func (l SwapLabel) Less(o SwapLabel) bool {
	if l.Cell != o.Cell {
		return l.Cell < o.Cell
	}
	return l.Letter < o.Letter
}

// SwapResult holds the ScoreIndex of every mutated board, keyed by the swap
// that produced it. Entries are never merged with each other.
type SwapResult map[SwapLabel]ScoreIndex

// ProgressFunc receives the number of finished swaps out of total.
type ProgressFunc func(done, total int)

// SwapLabels lists every substitution that changes b: each cell paired with
// each of the 25 letters it does not already hold.
func SwapLabels(b board.Board) []SwapLabel {
	labels := make([]SwapLabel, 0, board.Cells*25)
	for cell := 0; cell < board.Cells; cell++ {
		for letter := byte('a'); letter <= 'z'; letter++ {
			if letter == b[cell] {
				continue
			}
			labels = append(labels, SwapLabel{Cell: cell, Letter: letter})
		}
	}
	return labels
}

type swapOutcome struct {
	label SwapLabel
	idx   ScoreIndex
}

// ExploreSwaps runs a full board search for every label in SwapLabels(b).
// Each search starts from scratch on its own copy of the board.
//
// If ctx ends first, the swaps finished so far are returned with ctx.Err().
func (s *Solver) ExploreSwaps(ctx context.Context, b board.Board, mods board.Modifiers, progress ProgressFunc) (SwapResult, error) {
	start := time.Now()
	labels := SwapLabels(b)
	total := len(labels)

	jobs := make(chan SwapLabel)
	results := make(chan swapOutcome, s.workers)

	go func() {
		defer close(jobs)
		for _, l := range labels {
			select {
			case jobs <- l:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range jobs {
				if ctx.Err() != nil {
					continue
				}
				idx := SearchBoard(b.With(l.Cell, l.Letter), s.dict, mods)
				results <- swapOutcome{label: l, idx: idx}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := make(SwapResult, total)
	for out := range results {
		result[out.label] = out.idx
		if progress != nil {
			progress(len(result), total)
		}
	}

	if len(result) < total {
		s.log.Warnf("Swap exploration stopped after %d/%d swaps: %v", len(result), total, ctx.Err())
		return result, ctx.Err()
	}
	s.log.Debugf("Explored %d swaps with %d workers in %v", total, s.workers, time.Since(start))
	return result, nil
}
