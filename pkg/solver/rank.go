package solver

import "sort"

// Group is one point total and the words that reach it.
type Group struct {
	Points int
	Words  []string
}

// Top returns the n highest point totals with their sorted words.
// n of 0 or less returns every total.
func (idx ScoreIndex) Top(n int) []Group {
	scores := idx.Scores()
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}
	groups := make([]Group, len(scores))
	for i, p := range scores {
		groups[i] = Group{Points: p, Words: idx.Words(p)}
	}
	return groups
}

// SwapOption is one swap reaching a point total, with the words it enables there.
type SwapOption struct {
	Label SwapLabel
	Words []string
}

// SwapGroup is one point total reached by at least one swap.
type SwapGroup struct {
	Points  int
	Options []SwapOption
}

// Top returns the n highest point totals across all swaps. Every swap that
// reaches a total is listed under it, ordered by cell then letter.
// n of 0 or less returns every total.
func (r SwapResult) Top(n int) []SwapGroup {
	byPoints := make(map[int][]SwapOption)
	for label, idx := range r {
		for points, words := range idx {
			byPoints[points] = append(byPoints[points], SwapOption{Label: label, Words: sortedWords(words)})
		}
	}

	scores := make([]int, 0, len(byPoints))
	for p := range byPoints {
		scores = append(scores, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	if n > 0 && len(scores) > n {
		scores = scores[:n]
	}

	groups := make([]SwapGroup, len(scores))
	for i, p := range scores {
		options := byPoints[p]
		sort.Slice(options, func(a, b int) bool {
			return options[a].Label.Less(options[b].Label)
		})
		groups[i] = SwapGroup{Points: p, Options: options}
	}
	return groups
}
