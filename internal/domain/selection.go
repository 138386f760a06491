package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeatSelection is the transient staging area a user fills before
// committing a booking. It belongs to exactly one show and one session;
// it is single-actor state and needs no synchronization.
type SeatSelection struct {
	ID        string    `json:"id"`
	ShowID    int       `json:"showId"`
	Seats     []Seat    `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSeatSelection(showID int) SeatSelection {
	return SeatSelection{
		ID:        uuid.NewString(),
		ShowID:    showID,
		Seats:     []Seat{},
		CreatedAt: time.Now(),
	}
}

// Toggle adds the seat to the staged set, or removes it if it is already
// staged. Adding fails with ErrSeatOutOfRange for seats outside the grid,
// ErrSeatConflict when the seat is already booked for the target show,
// and ErrSelectionFull once the staged set holds MaxSeatsPerBooking seats.
func (s *SeatSelection) Toggle(seat Seat, booked map[Seat]bool) error {
	if !seat.InBounds() {
		return ErrSeatOutOfRange
	}

	for i, staged := range s.Seats {
		if staged == seat {
			s.Seats = append(s.Seats[:i], s.Seats[i+1:]...)
			return nil
		}
	}

	if booked[seat] {
		return ErrSeatConflict
	}

	if len(s.Seats) >= MaxSeatsPerBooking {
		return ErrSelectionFull
	}

	s.Seats = append(s.Seats, seat)

	return nil
}

func (s *SeatSelection) Contains(seat Seat) bool {
	for _, staged := range s.Seats {
		if staged == seat {
			return true
		}
	}

	return false
}

// Reset discards the staged seats and points the selection at a new show.
// It is invoked whenever the target show changes.
func (s *SeatSelection) Reset(showID int) {
	s.ShowID = showID
	s.Seats = []Seat{}
}
