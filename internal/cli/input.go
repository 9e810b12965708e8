// Package cli runs the interactive solver session and prints results for humans.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/board"
	"github.com/bastiangx/spellserve/pkg/solver"
	"github.com/charmbracelet/log"
)

const (
	boardPrompt = "Enter board (from top left, read rightwards to bottom right): "
	tilePrompt  = "Enter %s modifier position (in form 'x,y' from (0-4), nothing if no modifier): "
	swapPrompt  = "Would you like to use a swap? (y/N): "
	againPrompt = "Continue? (Y/n): "
)

// InputHandler runs the prompt loop: read a board and its modifiers, solve,
// print the best groups and ask whether to go again.
type InputHandler struct {
	solver       *solver.Solver
	reader       *bufio.Reader
	out          io.Writer
	print        *printer
	top          int
	showProgress bool
	rounds       int
}

// NewInputHandler creates a session on stdin/stdout showing the top groups per section.
func NewInputHandler(s *solver.Solver, top int, showProgress bool) *InputHandler {
	return newInputHandler(s, top, showProgress && IsTerminal(os.Stdout), os.Stdin, os.Stdout)
}

func newInputHandler(s *solver.Solver, top int, showProgress bool, r io.Reader, w io.Writer) *InputHandler {
	return &InputHandler{
		solver:       s,
		reader:       bufio.NewReader(r),
		out:          w,
		print:        newPrinter(w),
		top:          top,
		showProgress: showProgress,
	}
}

// errBoardLength ends the session after a board of the wrong size.
var errBoardLength = errors.New("board size not equal to 25")

// Start begins the interface loop. It returns nil when the user stops,
// when input ends or after a board of the wrong length.
func (h *InputHandler) Start(ctx context.Context) error {
	h.print.log.Print("SpellServe CLI")

	for {
		again, err := h.round(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				h.print.log.Print("")
				break
			}
			if errors.Is(err, errBoardLength) {
				h.print.log.Printf("Error: %v.", err)
				return nil
			}
			return err
		}
		if !again {
			break
		}
	}
	h.print.log.Print("Thanks for playing!")
	return nil
}

// round runs one board from prompt to results and reports whether to continue.
func (h *InputHandler) round(ctx context.Context) (bool, error) {
	req, err := h.readRequest()
	if err != nil {
		return false, err
	}
	h.rounds++
	log.Debugf("Round %d: board=[%s], mods=[%s], swaps=[%t]", h.rounds, req.Board, req.Mods, req.Swaps)

	fmt.Fprintln(h.out, "Finding best words...")
	resp, err := solve(ctx, h.out, h.solver, req, h.showProgress)
	if err != nil {
		log.Warnf("%v", err)
	}
	h.print.log.Print("Found all words!")
	h.print.results(resp, h.top, req.Swaps)

	answer, err := h.ask(againPrompt)
	if err != nil {
		return false, err
	}
	return utils.ParseYesNo(answer, true), nil
}

// readRequest prompts for the board, the three modifier tiles and the swap choice.
// Invalid coordinates and letters are asked for again.
func (h *InputHandler) readRequest() (solver.Request, error) {
	var req solver.Request

	for {
		line, err := h.ask(boardPrompt)
		if err != nil {
			return req, err
		}
		b, err := board.Parse(line)
		if errors.Is(err, board.ErrInvalidBoardLength) {
			return req, errBoardLength
		}
		if err != nil {
			h.print.log.Printf("Error: %v", err)
			continue
		}
		req.Board = b
		break
	}

	for _, f := range []struct {
		name string
		dst  *board.Tile
	}{
		{"double-letter", &req.Mods.DL},
		{"double-word", &req.Mods.DW},
		{"triple-letter", &req.Mods.TL},
	} {
		tile, err := h.askTile(f.name)
		if err != nil {
			return req, err
		}
		*f.dst = tile
	}

	answer, err := h.ask(swapPrompt)
	if err != nil {
		return req, err
	}
	req.Swaps = utils.ParseYesNo(answer, false)
	return req, nil
}

func (h *InputHandler) askTile(name string) (board.Tile, error) {
	for {
		line, err := h.ask(fmt.Sprintf(tilePrompt, name))
		if err != nil {
			return board.None, err
		}
		tile, err := board.ParseTile(line)
		if err != nil {
			h.print.log.Printf("Error: %v", err)
			continue
		}
		return tile, nil
	}
}

// ask prints prompt and reads one trimmed line. A final line without a
// newline is still returned; io.EOF is only reported once nothing is left.
func (h *InputHandler) ask(prompt string) (string, error) {
	fmt.Fprint(h.out, prompt)
	line, err := h.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
