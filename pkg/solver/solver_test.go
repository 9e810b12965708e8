package solver

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/bastiangx/spellserve/internal/logger"
	"github.com/bastiangx/spellserve/pkg/board"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// sampleWords is a small vocabulary with enough overlap to exercise pruning.
var sampleWords = []string{
	"a", "at", "ate", "eat", "tea", "tee", "net", "ten", "tent", "sent", "send",
	"nest", "nests", "stone", "stones", "onset", "notes", "tones", "dune", "under",
	"rude", "nude", "dent", "dents", "tends", "rug", "ours", "sour", "iron", "noun",
	"union", "dog", "god", "nod", "don", "need", "node", "nodes", "done", "undone",
	"sound", "round", "mound", "bind", "mind", "dim", "exude", "ode", "eon", "neon",
}

const sampleBoard = "osnruymbiidxeugodnonaiuec"

func newTrie(t testing.TB, words ...string) *dictionary.Trie {
	t.Helper()
	trie := dictionary.NewTrie()
	for _, w := range words {
		require.NoError(t, trie.AddWord(w))
	}
	return trie
}

func newPatricia(t testing.TB, words ...string) *dictionary.Patricia {
	t.Helper()
	p := dictionary.NewPatricia()
	for _, w := range words {
		require.NoError(t, p.AddWord(w))
	}
	return p
}

func catBoard() board.Board {
	return board.MustParse("catsz" + strings.Repeat("zzzzz", 4))
}

func indexOf(entries map[int][]string) ScoreIndex {
	idx := make(ScoreIndex)
	for points, words := range entries {
		for _, w := range words {
			idx.Add(points, w)
		}
	}
	return idx
}

func TestSearchBoardScenario(t *testing.T) {
	dict := newTrie(t, "cat", "cats", "at")

	got := SearchBoard(catBoard(), dict, board.Modifiers{})
	assert.Equal(t, indexOf(map[int][]string{8: {"cat"}, 10: {"cats"}, 3: {"at"}}), got)
}

func TestSearchBoardScenarioDoubleLetter(t *testing.T) {
	dict := newTrie(t, "cat", "cats", "at")
	mods := board.Modifiers{DL: board.At(board.Coord{Col: 0, Row: 0})}

	got := SearchBoard(catBoard(), dict, mods)
	assert.Equal(t, indexOf(map[int][]string{13: {"cat"}, 15: {"cats"}, 3: {"at"}}), got)
}

func TestSearchBoardNoWords(t *testing.T) {
	dict := newTrie(t, "cat", "cats", "at")
	got := SearchBoard(board.MustParse(strings.Repeat("z", 25)), dict, board.Modifiers{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchBoardSingleLetterWords(t *testing.T) {
	b := board.MustParse("a" + strings.Repeat("z", 23) + "a")

	got := SearchBoard(b, newTrie(t, "a"), board.Modifiers{})
	assert.Equal(t, indexOf(map[int][]string{1: {"a"}}), got)

	got = SearchBoard(b, newTrie(t, "at"), board.Modifiers{})
	assert.Empty(t, got, "no minimum length, but only dictionary entries are reported")
}

func TestSameWordDifferentScores(t *testing.T) {
	b := board.MustParse("atzzz" + "atzzz" + strings.Repeat("zzzzz", 3))
	mods := board.Modifiers{DL: board.At(board.Coord{Col: 0, Row: 0})}

	got := SearchBoard(b, newTrie(t, "at"), mods)
	assert.Equal(t, indexOf(map[int][]string{3: {"at"}, 4: {"at"}}), got)
}

func TestCellsAreNotReused(t *testing.T) {
	// "aa" needs two distinct a cells; a board with one a must not produce it.
	b := board.MustParse("a" + strings.Repeat("z", 24))
	got := SearchBoard(b, newTrie(t, "aa", "aza", "zaz"), board.Modifiers{})
	assert.Equal(t, indexOf(map[int][]string{17: {"zaz"}}), got)
}

func TestWalkPathsAreValid(t *testing.T) {
	b := board.MustParse(sampleBoard)
	dict := newTrie(t, sampleWords...)

	found := 0
	for cell := 0; cell < board.Cells; cell++ {
		Walk(b, dict, board.Modifiers{}, cell, func(m Match) {
			found++
			require.True(t, dict.IsWord(m.Word), m.Word)
			require.Len(t, m.Path, len(m.Word))
			assert.Equal(t, board.CoordOf(cell), m.Path[0], "path begins at the start cell")

			seen := make(map[board.Coord]bool)
			for i, c := range m.Path {
				require.False(t, seen[c], "%s reuses %s", m.Word, c)
				seen[c] = true
				assert.Equal(t, m.Word[i], b.At(c), "%s letter %d", m.Word, i)
				if i > 0 {
					assert.True(t, board.Adjacent(m.Path[i-1], c), "%s step %d", m.Word, i)
				}
			}
		})
	}
	assert.Greater(t, found, 0)
}

func TestBackendsAgree(t *testing.T) {
	b := board.MustParse(sampleBoard)
	mods := board.Modifiers{
		DL: board.At(board.Coord{Col: 1, Row: 2}),
		DW: board.At(board.Coord{Col: 3, Row: 3}),
		TL: board.At(board.Coord{Col: 1, Row: 2}),
	}

	fromTrie := SearchBoard(b, newTrie(t, sampleWords...), mods)
	fromPatricia := SearchBoard(b, newPatricia(t, sampleWords...), mods)
	assert.NotEmpty(t, fromTrie)
	assert.Equal(t, fromTrie, fromPatricia)
}

func TestSolveMatchesSequentialSearch(t *testing.T) {
	b := board.MustParse(sampleBoard)
	dict := newTrie(t, sampleWords...)
	mods := board.Modifiers{DW: board.At(board.Coord{Col: 2, Row: 2})}

	want := SearchBoard(b, dict, mods)
	for _, workers := range []int{1, 3, 8, 64} {
		s := New(dict, WithWorkers(workers))
		assert.Equal(t, want, s.Solve(b, mods), "workers=%d", workers)
	}
}

func TestSolverConcurrentUse(t *testing.T) {
	b := board.MustParse(sampleBoard)
	dict := newTrie(t, sampleWords...)
	s := New(dict, WithWorkers(4))
	want := SearchBoard(b, dict, board.Modifiers{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, s.Solve(b, board.Modifiers{}))
		}()
	}
	wg.Wait()
}

func TestWithWorkersDefault(t *testing.T) {
	s := New(newTrie(t, "cat"), WithWorkers(0))
	assert.GreaterOrEqual(t, s.Workers(), 1)
}

func TestScoreIndex(t *testing.T) {
	idx := make(ScoreIndex)
	best, ok := idx.Best()
	assert.False(t, ok)
	assert.Equal(t, 0, best)

	idx.Add(8, "cat")
	idx.Add(8, "act")
	idx.Add(8, "cat")
	idx.Add(3, "at")

	other := make(ScoreIndex)
	other.Add(10, "cats")
	other.Add(3, "at")
	idx.Merge(other)

	assert.Equal(t, []int{10, 8, 3}, idx.Scores())
	assert.Equal(t, []string{"act", "cat"}, idx.Words(8))
	assert.True(t, idx.Has(10, "cats"))
	assert.False(t, idx.Has(10, "cat"))
	assert.Equal(t, 4, idx.Entries())
	best, ok = idx.Best()
	assert.True(t, ok)
	assert.Equal(t, 10, best)

	assert.Equal(t, []Group{
		{Points: 10, Words: []string{"cats"}},
		{Points: 8, Words: []string{"act", "cat"}},
	}, idx.Top(2))
	assert.Len(t, idx.Top(0), 3)
	assert.Empty(t, make(ScoreIndex).Top(5))
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(sampleBoard, "0,0", "", "4,4", true)
	require.NoError(t, err)
	assert.Equal(t, board.MustParse(sampleBoard), req.Board)
	assert.True(t, req.Mods.DL.On(board.Coord{Col: 0, Row: 0}))
	assert.Equal(t, board.None, req.Mods.DW)
	assert.True(t, req.Mods.TL.On(board.Coord{Col: 4, Row: 4}))
	assert.True(t, req.Swaps)

	_, err = ParseRequest("short", "", "", "", false)
	assert.ErrorIs(t, err, board.ErrInvalidBoardLength)

	_, err = ParseRequest(sampleBoard, "", "7,1", "", false)
	assert.ErrorIs(t, err, board.ErrInvalidCoordinate)
	assert.ErrorContains(t, err, "dw")

	_, err = ParseRequest(sampleBoard, "x,y", "", "", false)
	assert.ErrorIs(t, err, board.ErrInvalidCoordinate)
}

func TestRunWithoutSwaps(t *testing.T) {
	s := New(newTrie(t, "cat", "cats", "at"), WithWorkers(2))
	resp, err := s.Run(context.Background(), Request{Board: catBoard()}, nil)
	require.NoError(t, err)
	assert.Equal(t, indexOf(map[int][]string{8: {"cat"}, 10: {"cats"}, 3: {"at"}}), resp.Words)
	assert.Nil(t, resp.Swaps)
}

func TestRunLogsOncePerRequest(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithConfig(&buf, "solver", log.DebugLevel, false, false, log.TextFormatter)
	s := New(newTrie(t, "cat", "cats"), WithWorkers(2), WithLogger(l))
	b := catBoard()

	s.Solve(b, board.Modifiers{})
	assert.NotContains(t, buf.String(), b.String(), "Solve alone does not log")

	_, err := s.Run(context.Background(), Request{Board: b}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), b.String()))

	buf.Reset()
	_, err = s.Run(context.Background(), Request{Board: b, Swaps: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), b.String()), "swap searches do not log per label")
}
