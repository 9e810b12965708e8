package solver

import (
	"github.com/bastiangx/spellserve/pkg/board"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/bastiangx/spellserve/pkg/score"
)

// Dictionary is the read-only view of a vocabulary the search needs.
type Dictionary interface {
	IsWord(s string) bool
	CanContinue(s string) bool
}

// Match is one word traced on the board.
type Match struct {
	Word   string
	Path   []board.Coord
	Points int
}

// Walk calls fn for every word reachable from the start cell by an
// 8-directional path that never reuses a cell. A word reached by several
// paths is reported once per path.
//
// Match.Path is only valid for the duration of the call to fn.
func Walk(b board.Board, dict Dictionary, mods board.Modifiers, start int, fn func(Match)) {
	w := walker{board: b, mods: mods, dict: dict, fn: fn}
	if trie, ok := dict.(*dictionary.Trie); ok {
		w.trie = trie
	}
	w.start(start)
}

// SearchBoard runs Walk from every cell and aggregates the results.
func SearchBoard(b board.Board, dict Dictionary, mods board.Modifiers) ScoreIndex {
	idx := make(ScoreIndex)
	for cell := 0; cell < board.Cells; cell++ {
		searchCell(b, dict, mods, cell, idx)
	}
	return idx
}

func searchCell(b board.Board, dict Dictionary, mods board.Modifiers, cell int, idx ScoreIndex) {
	Walk(b, dict, mods, cell, func(m Match) {
		idx.Add(m.Points, m.Word)
	})
}

// walker holds the state of one depth-first search. The visited set is a
// 25-bit mask passed by value down the recursion, so sibling branches never
// observe each other's cells.
type walker struct {
	board board.Board
	mods  board.Modifiers
	dict  Dictionary
	trie  *dictionary.Trie // set when dict is a Trie; enables the node walk
	word  [board.Cells]byte
	path  [board.Cells]board.Coord
	fn    func(Match)
}

func (w *walker) start(cell int) {
	letter := w.board[cell]
	w.word[0] = letter
	w.path[0] = board.CoordOf(cell)
	visited := uint32(1) << cell

	if w.trie != nil {
		node := w.trie.Root().Child(letter)
		if node.IsWord() {
			w.report(1)
		}
		if node.HasChildren() {
			w.extendNode(cell, 1, visited, node)
		}
		return
	}

	prefix := string(w.word[:1])
	if w.dict.IsWord(prefix) {
		w.report(1)
	}
	if w.dict.CanContinue(prefix) {
		w.extend(cell, 1, visited)
	}
}

// extendNode follows trie children directly instead of re-walking the prefix.
func (w *walker) extendNode(cell, depth int, visited uint32, node *dictionary.Node) {
	for _, next := range board.Neighbors(cell) {
		bit := uint32(1) << next
		if visited&bit != 0 {
			continue
		}
		letter := w.board[next]
		child := node.Child(letter)
		if child == nil {
			continue
		}

		w.word[depth] = letter
		w.path[depth] = board.CoordOf(next)
		if child.IsWord() {
			w.report(depth + 1)
		}
		if child.HasChildren() {
			w.extendNode(next, depth+1, visited|bit, child)
		}
	}
}

func (w *walker) extend(cell, depth int, visited uint32) {
	for _, next := range board.Neighbors(cell) {
		bit := uint32(1) << next
		if visited&bit != 0 {
			continue
		}

		w.word[depth] = w.board[next]
		w.path[depth] = board.CoordOf(next)
		prefix := string(w.word[:depth+1])
		if w.dict.IsWord(prefix) {
			w.report(depth + 1)
		}
		if w.dict.CanContinue(prefix) {
			w.extend(next, depth+1, visited|bit)
		}
	}
}

func (w *walker) report(n int) {
	word := string(w.word[:n])
	path := w.path[:n]
	w.fn(Match{
		Word:   word,
		Path:   path,
		Points: score.Score(word, path, w.mods),
	})
}
