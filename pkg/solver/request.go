package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/spellserve/pkg/board"
)

// Request is one validated search: a board, its modifier tiles and whether to explore swaps.
type Request struct {
	Board board.Board
	Mods  board.Modifiers
	Swaps bool
}

// Response carries the unmodified board's results and, when requested, the swap results.
type Response struct {
	Words     ScoreIndex
	Swaps     SwapResult
	Took      time.Duration
	SwapsTook time.Duration
}

// ParseRequest validates raw request fields. Coordinates are "col,row"; blank means absent.
// Everything is checked before any search runs.
func ParseRequest(boardStr, dl, dw, tl string, swaps bool) (Request, error) {
	b, err := board.Parse(boardStr)
	if err != nil {
		return Request{}, err
	}

	var mods board.Modifiers
	for _, f := range []struct {
		name string
		raw  string
		dst  *board.Tile
	}{
		{"dl", dl, &mods.DL},
		{"dw", dw, &mods.DW},
		{"tl", tl, &mods.TL},
	} {
		tile, err := board.ParseTile(f.raw)
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = tile
	}

	return Request{Board: b, Mods: mods, Swaps: swaps}, nil
}

// Run solves req. Swap exploration is bounded by ctx and by the solver's swap
// timeout; when it is cut short the partial swap results are returned with the error.
func (s *Solver) Run(ctx context.Context, req Request, progress ProgressFunc) (Response, error) {
	start := time.Now()
	resp := Response{Words: s.Solve(req.Board, req.Mods)}
	resp.Took = time.Since(start)

	if !req.Swaps {
		s.logRun(req, resp)
		return resp, nil
	}

	if s.swapTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.swapTimeout)
		defer cancel()
	}

	swapStart := time.Now()
	swaps, err := s.ExploreSwaps(ctx, req.Board, req.Mods, progress)
	resp.Swaps = swaps
	resp.SwapsTook = time.Since(swapStart)
	s.logRun(req, resp)
	if err != nil {
		return resp, fmt.Errorf("swap exploration incomplete: %w", err)
	}
	return resp, nil
}

func (s *Solver) logRun(req Request, resp Response) {
	if !req.Swaps {
		s.log.Debugf("Solved %s (%s): %d entries in %v",
			req.Board, req.Mods, resp.Words.Entries(), resp.Took)
		return
	}
	s.log.Debugf("Solved %s (%s): %d entries in %v, %d swaps with words in %v",
		req.Board, req.Mods, resp.Words.Entries(), resp.Took, len(resp.Swaps), resp.SwapsTook)
}
