package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// printer writes result listings. Words are highlighted when w supports color.
type printer struct {
	log  *log.Logger
	word lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		log:  logger.Plain(w),
		word: r.NewStyle().Foreground(lipgloss.ANSIColor(75)),
	}
}

func (p *printer) words(words []string) string {
	styled := make([]string, len(words))
	for i, w := range words {
		styled[i] = p.word.Render(w)
	}
	return utils.JoinWords(styled)
}

// PrintResults lists the top score groups of resp, best first. When the
// response carries swap results they are listed in a second section.
func PrintResults(w io.Writer, resp solver.Response, top int, withSwaps bool) {
	newPrinter(w).results(resp, top, withSwaps)
}

func (p *printer) results(resp solver.Response, top int, withSwaps bool) {
	if withSwaps {
		p.log.Print("=== WITHOUT SWAPPING ===")
	}
	groups := resp.Words.Top(top)
	if len(groups) == 0 {
		p.log.Print("No words found.")
	}
	for _, g := range groups {
		p.log.Printf("For %d points...", g.Points)
		p.log.Printf("\t%s", p.words(g.Words))
	}

	if !withSwaps {
		return
	}
	p.log.Print("=== WITH 1 SWAP ===")
	for _, g := range resp.Swaps.Top(top) {
		p.log.Printf("For %d points...", g.Points)
		for _, opt := range g.Options {
			p.log.Printf("\tSwap %s: %s", opt.Label, p.words(opt.Words))
		}
	}
}

// RunOnce solves a single request and prints it.
// A swap search cut short by its timeout still prints what it found.
func RunOnce(ctx context.Context, w io.Writer, s *solver.Solver, req solver.Request, top int, showProgress bool) {
	p := newPrinter(w)
	resp, err := solve(ctx, w, s, req, showProgress && IsTerminal(w))
	if err != nil {
		log.Warnf("%v", err)
	}

	p.log.Print("Board:")
	for _, row := range req.Board.Rows() {
		p.log.Printf("\t%s", row)
	}
	p.log.Printf("Modifiers: %s", req.Mods)
	p.log.Printf("Found %s entries in %v", utils.FormatWithCommas(resp.Words.Entries()), resp.Took)
	p.results(resp, top, req.Swaps)
}

// solve runs req, drawing a progress bar for the swap search.
func solve(ctx context.Context, w io.Writer, s *solver.Solver, req solver.Request, bar bool) (solver.Response, error) {
	var progress solver.ProgressFunc
	var pb *ProgressBar
	if req.Swaps {
		pb = NewProgressBar(w, "Performing swaps", bar)
		pb.Start()
		progress = pb.Update
	}
	resp, err := s.Run(ctx, req, progress)
	if pb != nil {
		pb.Finish()
	}
	if err != nil {
		return resp, fmt.Errorf("solve: %w", err)
	}
	return resp, nil
}
