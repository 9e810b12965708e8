package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/board"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for board solving
type Server struct {
	loader     *dictionary.RuntimeLoader
	config     *config.Config
	configPath string
	dec        *msgpack.Decoder
	w          io.Writer
	out        *bufio.Writer
	enc        *msgpack.Encoder
	log        *log.Logger
	requests   int
}

// NewServer creates a new solver server using stdin/stdout for IPC
func NewServer(loader *dictionary.RuntimeLoader, cfg *config.Config, configPath string) *Server {
	return newServer(loader, cfg, configPath, os.Stdin, os.Stdout)
}

func newServer(loader *dictionary.RuntimeLoader, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	return &Server{
		loader:     loader,
		config:     cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(bufio.NewReader(r)),
		w:          w,
		out:        out,
		enc:        msgpack.NewEncoder(out),
		log:        logger.New("server"),
	}
}

// Start announces readiness and serves requests until the input is closed.
// A request that fails to decode into Request gets a 400 and serving goes on;
// a frame that is not valid msgpack ends the loop.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			// The stream cannot be resynchronised after a broken message.
			s.sendError("", fmt.Sprintf("Invalid msgpack request: %v", err), CodeBadRequest)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Debugf("Rejecting request %d: %v", s.requests, err)
			s.sendError(requestID(raw), fmt.Sprintf("Invalid request: %v", err), CodeBadRequest)
			continue
		}
		s.handleRequest(req)
	}
}

// requestID pulls the id out of a request whose other fields failed to decode.
func requestID(raw msgpack.RawMessage) string {
	var head struct {
		ID string `msgpack:"id"`
	}
	if err := msgpack.Unmarshal(raw, &head); err != nil {
		return ""
	}
	return head.ID
}

// handleRequest dispatches one decoded request by action.
func (s *Server) handleRequest(req Request) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	s.log.Debugf("Request %s: action=[%s]", req.ID, req.Action)

	switch req.Action {
	case "", ActionSolve:
		s.handleSolve(req)
	case ActionInfo:
		s.handleInfo(req)
	case ActionComplete:
		s.handleComplete(req)
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionReload:
		s.handleReload(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeUnknownAction)
	}
}

// sendResponse encodes one response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		s.out.Reset(s.w)
		s.sendError("", "Internal server error", CodeInternal)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	if err := s.enc.Encode(ErrorResponse{ID: id, Error: message, Code: code}); err != nil {
		s.log.Errorf("Encoding error response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		s.log.Errorf("Writing error response: %v", err)
	}
}

// limit clamps a requested result count to [1, max_limit], defaulting when unset.
func (s *Server) limit(requested int) int {
	if requested < 1 {
		return s.config.Server.DefaultLimit
	}
	return min(requested, s.config.Server.MaxLimit)
}

func (s *Server) lexicon(id string) (dictionary.Lexicon, bool) {
	lex := s.loader.Lexicon()
	if lex == nil {
		s.sendError(id, "Dictionary not loaded", CodeInternal)
		return nil, false
	}
	return lex, true
}

func (s *Server) newSolver(lex dictionary.Lexicon) *solver.Solver {
	return solver.New(lex,
		solver.WithWorkers(s.config.Solver.Workers),
		solver.WithSwapTimeout(s.config.Solver.SwapTimeout()),
		solver.WithLogger(s.log),
	)
}

// parseSolve validates the board and tiles of a solve request.
func parseSolve(req Request) (solver.Request, error) {
	b, err := board.Parse(req.Board)
	if err != nil {
		return solver.Request{}, err
	}

	var mods board.Modifiers
	for _, f := range []struct {
		name string
		pair []int
		dst  *board.Tile
	}{
		{"dl", req.DL, &mods.DL},
		{"dw", req.DW, &mods.DW},
		{"tl", req.TL, &mods.TL},
	} {
		tile, err := board.TileFromPair(f.pair)
		if err != nil {
			return solver.Request{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = tile
	}
	return solver.Request{Board: b, Mods: mods, Swaps: req.Swaps}, nil
}

func (s *Server) handleSolve(req Request) {
	sreq, err := parseSolve(req)
	if err != nil {
		s.sendError(req.ID, err.Error(), CodeBadRequest)
		s.log.Debugf("Rejected request %s: %v", req.ID, err)
		return
	}
	lex, ok := s.lexicon(req.ID)
	if !ok {
		return
	}

	resp, err := s.newSolver(lex).Run(context.Background(), sreq, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.sendError(req.ID, err.Error(), CodeSwapTimeout)
			return
		}
		s.sendError(req.ID, err.Error(), CodeInternal)
		return
	}

	limit := s.limit(req.Limit)
	response := SolveResponse{
		ID:        req.ID,
		Groups:    wordGroups(resp.Words.Top(limit)),
		Count:     resp.Words.Entries(),
		TimeTaken: resp.Took.Microseconds(),
	}
	if sreq.Swaps {
		response.Swaps = swapGroups(resp.Swaps.Top(limit))
		response.SwapTime = resp.SwapsTook.Microseconds()
	}
	s.sendResponse(response)
}

func wordGroups(groups []solver.Group) []WordGroup {
	ranks := utils.CreateRankList(len(groups))
	out := make([]WordGroup, len(groups))
	for i, g := range groups {
		out[i] = WordGroup{Points: g.Points, Words: g.Words, Rank: ranks[i]}
	}
	return out
}

func swapGroups(groups []solver.SwapGroup) []SwapGroup {
	ranks := utils.CreateRankList(len(groups))
	out := make([]SwapGroup, len(groups))
	for i, g := range groups {
		options := make([]SwapOption, len(g.Options))
		for j, opt := range g.Options {
			c := opt.Label.Coord()
			options[j] = SwapOption{Col: c.Col, Row: c.Row, Letter: string(opt.Label.Letter), Words: opt.Words}
		}
		out[i] = SwapGroup{Points: g.Points, Rank: ranks[i], Options: options}
	}
	return out
}

func (s *Server) handleComplete(req Request) {
	prefix := utils.NormalizeWord(req.Prefix)
	if prefix == "" {
		s.sendError(req.ID, "Missing 'p' parameter", CodeBadRequest)
		return
	}
	if !utils.IsLowerAlpha(prefix) {
		s.sendError(req.ID, fmt.Sprintf("Prefix %q must contain only letters a-z", req.Prefix), CodeBadRequest)
		return
	}
	lex, ok := s.lexicon(req.ID)
	if !ok {
		return
	}

	start := time.Now()
	words := lex.Complete(prefix, s.limit(req.Limit))
	s.sendResponse(CompleteResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleInfo(req Request) {
	info := s.loader.Info()
	status := "ok"
	if s.loader.Lexicon() == nil {
		status = "empty"
	}
	var loadedAt int64
	if !info.LoadedAt.IsZero() {
		loadedAt = info.LoadedAt.Unix()
	}

	workers := s.config.Solver.Workers
	if lex := s.loader.Lexicon(); lex != nil {
		workers = s.newSolver(lex).Workers()
	}

	s.sendResponse(InfoResponse{
		ID:       req.ID,
		Status:   status,
		Path:     info.Path,
		Backend:  string(info.Backend),
		Words:    info.Words,
		Skipped:  info.Skipped,
		LoadedAt: loadedAt,
		Workers:  workers,
		MaxLimit: s.config.Server.MaxLimit,
	})
}

// handleReload re-reads the word list and, when set, the config file.
func (s *Server) handleReload(req Request) {
	if s.configPath != "" {
		if cfg, err := config.LoadConfig(s.configPath); err == nil {
			s.config = cfg
		} else {
			s.log.Warnf("Keeping current config, reload of %s failed: %v", s.configPath, err)
		}
	}
	if err := s.loader.Load(); err != nil {
		s.sendError(req.ID, err.Error(), CodeInternal)
		return
	}
	s.log.Debugf("Reloaded dictionary: %d words", s.loader.Info().Words)
	s.sendResponse(StatusResponse{ID: req.ID, Status: "reloaded"})
}
