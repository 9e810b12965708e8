package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is a (col, row) pair on the grid.
type Coord struct {
	Col int
	Row int
}

// CoordOf converts a flattened index back to a Coord.
func CoordOf(i int) Coord {
	return Coord{Col: i % Size, Row: i / Size}
}

// Index returns the flattened index col + row*5.
func (c Coord) Index() int {
	return c.Col + c.Row*Size
}

// Valid reports whether c lies on the grid.
func (c Coord) Valid() bool {
	return c.Col >= 0 && c.Col < Size && c.Row >= 0 && c.Row < Size
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Col, c.Row)
}

// Adjacent reports whether a and b are 8-directional neighbours.
func Adjacent(a, b Coord) bool {
	dc, dr := abs(a.Col-b.Col), abs(a.Row-b.Row)
	return max(dc, dr) == 1
}

// ParseCoord reads a coordinate written as "col,row".
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q is not in the form col,row", ErrInvalidCoordinate, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: column %q is not a number", ErrInvalidCoordinate, parts[0])
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: row %q is not a number", ErrInvalidCoordinate, parts[1])
	}
	return NewCoord(col, row)
}

// NewCoord returns the Coord (col, row) or ErrInvalidCoordinate when it is off the grid.
func NewCoord(col, row int) (Coord, error) {
	c := Coord{Col: col, Row: row}
	if !c.Valid() {
		return Coord{}, fmt.Errorf("%w: %s is outside [0,%d]", ErrInvalidCoordinate, c, Size-1)
	}
	return c, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
