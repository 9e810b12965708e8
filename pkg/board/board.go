/*
Package board holds the static 5x5 letter grid and the tiles that modify scoring.

Cells are addressed by a (col, row) Coord or by their flattened index col + row*5.
Boards are values; With returns a modified copy and leaves the original alone.

	b, err := board.Parse("catszzzzzzzzzzzzzzzzzzzzz")
	mods := board.Modifiers{DL: board.At(board.Coord{Col: 0, Row: 0})}
*/
package board

import (
	"fmt"
	"strings"
)

const (
	// Size is the width and height of the grid.
	Size = 5
	// Cells is the number of cells on the grid.
	Cells = Size * Size
)

// Board is a row-major sequence of 25 lowercase letters.
type Board [Cells]byte

// neighbors holds the 8-directional adjacency of every cell.
var neighbors [Cells][]int

func init() {
	for i := 0; i < Cells; i++ {
		c := CoordOf(i)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				n := Coord{Col: c.Col + dc, Row: c.Row + dr}
				if n.Valid() {
					neighbors[i] = append(neighbors[i], n.Index())
				}
			}
		}
	}
}

// Parse validates a 25 character string and returns the board it describes.
// Input is trimmed and lowercased first.
func Parse(s string) (Board, error) {
	var b Board
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Cells {
		return b, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidBoardLength, len(s), Cells)
	}
	for i := 0; i < Cells; i++ {
		ch := s[i]
		if ch < 'a' || ch > 'z' {
			return b, fmt.Errorf("%w: %q at %s", ErrInvalidCharacter, ch, CoordOf(i))
		}
		b[i] = ch
	}
	return b, nil
}

// MustParse is like Parse but panics on invalid input. Meant for tests and fixtures.
func MustParse(s string) Board {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// At returns the letter at c.
func (b Board) At(c Coord) byte {
	return b[c.Index()]
}

// With returns a copy of b with cell i set to letter.
func (b Board) With(i int, letter byte) Board {
	b[i] = letter
	return b
}

func (b Board) String() string {
	return string(b[:])
}

// Rows renders the board as five lines of letters, used by the CLI.
func (b Board) Rows() []string {
	rows := make([]string, Size)
	for r := 0; r < Size; r++ {
		rows[r] = string(b[r*Size : (r+1)*Size])
	}
	return rows
}

// Neighbors returns the flattened indices adjacent to cell i.
// The returned slice is shared and must not be modified.
func Neighbors(i int) []int {
	return neighbors[i]
}
