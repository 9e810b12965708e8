package solver

import "sort"

// ScoreIndex maps a point total to the set of words scoring exactly that total.
// The same word may appear under several totals when different paths give it
// different modifier coverage.
type ScoreIndex map[int]map[string]struct{}

// Add records word under points.
func (idx ScoreIndex) Add(points int, word string) {
	words, ok := idx[points]
	if !ok {
		words = make(map[string]struct{})
		idx[points] = words
	}
	words[word] = struct{}{}
}

// Merge adds every entry of other into idx.
func (idx ScoreIndex) Merge(other ScoreIndex) {
	for points, words := range other {
		for w := range words {
			idx.Add(points, w)
		}
	}
}

// Has reports whether word is recorded under points.
func (idx ScoreIndex) Has(points int, word string) bool {
	_, ok := idx[points][word]
	return ok
}

// Words returns the words recorded under points, sorted.
func (idx ScoreIndex) Words(points int) []string {
	return sortedWords(idx[points])
}

// Scores returns every point total in descending order.
func (idx ScoreIndex) Scores() []int {
	scores := make([]int, 0, len(idx))
	for p := range idx {
		scores = append(scores, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	return scores
}

// Best returns the highest point total, or 0 and false for an empty index.
func (idx ScoreIndex) Best() (int, bool) {
	best, found := 0, false
	for p := range idx {
		if !found || p > best {
			best, found = p, true
		}
	}
	return best, found
}

// Entries counts (points, word) pairs.
func (idx ScoreIndex) Entries() int {
	n := 0
	for _, words := range idx {
		n += len(words)
	}
	return n
}

func sortedWords(set map[string]struct{}) []string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
