package board

import "errors"

var (
	// ErrInvalidBoardLength is returned when a board string is not 25 characters.
	ErrInvalidBoardLength = errors.New("invalid board length")
	// ErrInvalidCoordinate is returned for non-numeric or off-grid coordinates.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidCharacter is returned when a board cell is not a letter.
	ErrInvalidCharacter = errors.New("invalid board character")
)
