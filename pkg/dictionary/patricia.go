package dictionary

import (
	"errors"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// errStopVisit ends a subtree visit early once the answer is known.
var errStopVisit = errors.New("stop visit")

// Patricia is a Lexicon backed by a compressed Patricia trie.
// It uses less memory than Trie on large word lists at the cost of slower
// per-letter lookups during the board search.
type Patricia struct {
	trie  *patricia.Trie
	words int
}

// NewPatricia returns an empty Patricia lexicon.
func NewPatricia() *Patricia {
	return &Patricia{trie: patricia.NewTrie()}
}

func (p *Patricia) AddWord(word string) error {
	if err := validate(word); err != nil {
		return err
	}
	if p.trie.Insert(patricia.Prefix(word), true) {
		p.words++
	}
	return nil
}

func (p *Patricia) IsWord(s string) bool {
	return p.trie.Get(patricia.Prefix(s)) != nil
}

func (p *Patricia) CanContinue(s string) bool {
	found := false
	err := p.trie.VisitSubtree(patricia.Prefix(s), func(key patricia.Prefix, _ patricia.Item) error {
		if len(key) > len(s) {
			found = true
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Error visiting patricia subtree: %v", err)
	}
	return found
}

func (p *Patricia) Len() int {
	return p.words
}

// Complete returns up to limit words under prefix, in lexical order.
// A limit of 0 or less returns every match.
func (p *Patricia) Complete(prefix string, limit int) []string {
	results := []string{}
	err := p.trie.VisitSubtree(patricia.Prefix(prefix), func(key patricia.Prefix, _ patricia.Item) error {
		results = append(results, string(key))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting patricia subtree: %v", err)
	}

	// child order inside the trie is not lexical
	sort.Strings(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
