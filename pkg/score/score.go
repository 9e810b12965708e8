// Package score computes the point value of a word traced on the board.
package score

import "github.com/bastiangx/spellserve/pkg/board"

const (
	// LengthBonus is added to words of at least BonusLength letters.
	LengthBonus = 10
	// BonusLength is the minimum word length that earns LengthBonus.
	BonusLength = 6
)

var letterValues = [26]int{
	1, // a
	4, // b
	5, // c
	3, // d
	1, // e
	5, // f
	3, // g
	4, // h
	1, // i
	7, // j
	6, // k
	3, // l
	4, // m
	2, // n
	1, // o
	4, // p
	8, // q
	2, // r
	2, // s
	2, // t
	4, // u
	5, // v
	5, // w
	7, // x
	4, // y
	8, // z
}

// LetterValue returns the base value of a lowercase letter, or 0 for anything else.
func LetterValue(letter byte) int {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return letterValues[letter-'a']
}

// Score returns the points for word traced along path with mods active.
// word[i] must be the letter at path[i].
//
// Letter multipliers stack on a shared cell (dl and tl together give x6).
// The double word multiplier applies once to the letter sum, and the length
// bonus is added after it.
func Score(word string, path []board.Coord, mods board.Modifiers) int {
	total := 0
	wordMultiplier := 1
	for i, c := range path {
		points := LetterValue(word[i])
		if mods.DL.On(c) {
			points *= 2
		}
		if mods.TL.On(c) {
			points *= 3
		}
		if mods.DW.On(c) {
			wordMultiplier = 2
		}
		total += points
	}

	total *= wordMultiplier
	if len(word) >= BonusLength {
		total += LengthBonus
	}
	return total
}
