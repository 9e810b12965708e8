package dictionary

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// RuntimeLoader owns the active Lexicon of a long-running process and lets it be
// reloaded from disk. A reload builds a complete new Lexicon before swapping it
// in, so readers only ever see a fully populated dictionary.
type RuntimeLoader struct {
	path     string
	backend  Backend
	lex      Lexicon
	report   LoadReport
	loadedAt time.Time
	mu       sync.RWMutex
}

// Info describes the currently loaded dictionary.
type Info struct {
	Path     string
	Backend  Backend
	Words    int
	Skipped  int
	LoadedAt time.Time
}

// NewRuntimeLoader creates a loader for the word list at path. Call Load before use.
func NewRuntimeLoader(path string, backend Backend) *RuntimeLoader {
	if backend == "" {
		backend = BackendTrie
	}
	return &RuntimeLoader{
		path:    path,
		backend: backend,
	}
}

// Load reads the word list and replaces the active Lexicon.
// On failure the previous Lexicon stays active.
func (rl *RuntimeLoader) Load() error {
	lex, report, err := LoadFile(rl.path, rl.backend)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.lex = lex
	rl.report = report
	rl.loadedAt = time.Now()

	log.Debugf("Dictionary ready: backend=[%s], words=[%d]", rl.backend, lex.Len())
	return nil
}

// Lexicon returns the active Lexicon, or nil before the first successful Load.
func (rl *RuntimeLoader) Lexicon() Lexicon {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.lex
}

// Report returns the report of the last successful load.
func (rl *RuntimeLoader) Report() LoadReport {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.report
}

// Info returns a summary of the active dictionary.
func (rl *RuntimeLoader) Info() Info {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	info := Info{
		Path:     rl.path,
		Backend:  rl.backend,
		Skipped:  rl.report.SkippedCount(),
		LoadedAt: rl.loadedAt,
	}
	if rl.lex != nil {
		info.Words = rl.lex.Len()
	}
	return info
}
