/*
Package dictionary builds and queries the vocabulary used by the board search.

Two backends implement Lexicon:

  - Trie: a 26-ary array trie. The solver walks its nodes letter by letter,
    which makes it the fastest choice and the default.
  - Patricia: a compressed trie from go-patricia, queried by whole prefix.

Both are populated once from a line-oriented word list and are read-only
afterwards, so a single instance can be shared by every search worker.

	lex, report, err := dictionary.LoadFile("dictionary.txt", dictionary.BackendTrie)
	lex.IsWord("cat")      // true
	lex.CanContinue("cat") // true when "cats" is present
*/
package dictionary

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter is returned when a word contains anything outside a-z.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrEmptyWord is returned when adding an empty word.
	ErrEmptyWord = errors.New("empty word")
	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown dictionary backend")
	// ErrLineTooLong is recorded for word list lines longer than maxLineLength bytes.
	ErrLineTooLong = errors.New("line too long")
)

// Backend names a Lexicon implementation.
type Backend string

const (
	BackendTrie     Backend = "trie"
	BackendPatricia Backend = "patricia"
)

// Lexicon stores a vocabulary and answers word and prefix queries.
type Lexicon interface {
	// AddWord inserts a lowercase a-z word. Invalid words are rejected untouched.
	AddWord(word string) error
	// IsWord reports whether s is in the vocabulary.
	IsWord(s string) bool
	// CanContinue reports whether some longer word starts with s.
	CanContinue(s string) bool
	// Complete lists up to limit words beginning with prefix, sorted.
	Complete(prefix string, limit int) []string
	// Len returns the number of distinct words.
	Len() int
}

// New returns an empty Lexicon for the given backend. An empty name selects BackendTrie.
func New(backend Backend) (Lexicon, error) {
	switch backend {
	case BackendTrie, "":
		return NewTrie(), nil
	case BackendPatricia:
		return NewPatricia(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
