package domain

import (
	"fmt"
	"strconv"
)

// Every show uses the same fixed seating grid. Rows and columns are
// zero-based; the display label for a seat is derived from them, so
// (row, col) is the single canonical seat identifier everywhere.
const (
	SeatGridRows = 10
	SeatGridCols = 10
)

type Seat struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Seat) InBounds() bool {
	return s.Row >= 0 && s.Row < SeatGridRows && s.Col >= 0 && s.Col < SeatGridCols
}

// Label returns the display form of a seat, e.g. (0,0) -> "A1" and
// (9,9) -> "J10". Rows map to letters, columns to one-based numbers.
func (s Seat) Label() string {
	return fmt.Sprintf("%c%d", 'A'+rune(s.Row), s.Col+1)
}

// SeatFromLabel is the inverse of Label. It accepts labels like "A1"
// through "J10" and rejects anything that falls outside the grid.
func SeatFromLabel(label string) (Seat, error) {
	if len(label) < 2 {
		return Seat{}, ErrSeatOutOfRange
	}

	row := int(label[0] - 'A')

	col, err := strconv.Atoi(label[1:])
	if err != nil {
		return Seat{}, ErrSeatOutOfRange
	}

	seat := Seat{Row: row, Col: col - 1}
	if !seat.InBounds() {
		return Seat{}, ErrSeatOutOfRange
	}

	return seat, nil
}
