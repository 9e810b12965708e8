package board

import (
	"fmt"
	"strings"
)

// Tile is an optional board coordinate: either absent or placed at exactly one cell.
// The zero value is absent.
type Tile struct {
	pos Coord
	set bool
}

// None is the absent tile.
var None = Tile{}

// At places a tile on c.
func At(c Coord) Tile {
	return Tile{pos: c, set: true}
}

// Get returns the tile's coordinate and whether it is present.
func (t Tile) Get() (Coord, bool) {
	return t.pos, t.set
}

// On reports whether the tile is present and sits on c.
func (t Tile) On(c Coord) bool {
	return t.set && t.pos == c
}

func (t Tile) String() string {
	if !t.set {
		return "none"
	}
	return t.pos.String()
}

// ParseTile reads an optional "col,row" coordinate. Blank input means absent.
func ParseTile(s string) (Tile, error) {
	if strings.TrimSpace(s) == "" {
		return None, nil
	}
	c, err := ParseCoord(s)
	if err != nil {
		return None, err
	}
	return At(c), nil
}

// TileFromPair builds a tile from a [col, row] pair. An empty pair means absent.
func TileFromPair(pair []int) (Tile, error) {
	switch len(pair) {
	case 0:
		return None, nil
	case 2:
		c, err := NewCoord(pair[0], pair[1])
		if err != nil {
			return None, err
		}
		return At(c), nil
	default:
		return None, fmt.Errorf("%w: expected 2 values, got %d", ErrInvalidCoordinate, len(pair))
	}
}

// Modifiers are the scoring tiles active on a board.
// Several tiles may share a coordinate; their effects stack.
type Modifiers struct {
	DL Tile // double letter
	DW Tile // double word
	TL Tile // triple letter
}

func (m Modifiers) String() string {
	return fmt.Sprintf("dl=%s dw=%s tl=%s", m.DL, m.DW, m.TL)
}
