package domain

import (
	"context"
	"time"
)

// MaxSeatsPerBooking caps how many seats a single booking may hold.
const MaxSeatsPerBooking = 6

type Booking struct {
	ID        int
	UserID    int
	ShowID    int
	Seats     []Seat
	CreatedAt time.Time
}

// ShowBooking is a booking annotated with the owner's display identity,
// used by the administrative seat layout view.
type ShowBooking struct {
	Booking
	OwnerName  string
	OwnerEmail string
}

type BookingRepository interface {
	// Create persists a new booking and its seats as one transaction. The
	// seat conflict check and the insert form a single atomic unit: the
	// per-show seat uniqueness constraint is enforced at commit time, so
	// under concurrent submission at most one booking wins each contested
	// seat and the others fail with ErrSeatConflict. Fails with
	// ErrShowNotFound when the show does not exist.
	Create(ctx context.Context, booking *Booking) error

	GetById(ctx context.Context, id int) (*Booking, error)

	// GetAllByUserId returns the user's bookings, newest first.
	GetAllByUserId(ctx context.Context, userId int) ([]Booking, error)

	// GetAllByShowId returns every booking for a show annotated with the
	// owning user's name and email.
	GetAllByShowId(ctx context.Context, showId int) ([]ShowBooking, error)

	// GetSeatsByShowId returns the union of seats across all of a show's
	// bookings.
	GetSeatsByShowId(ctx context.Context, showId int) ([]Seat, error)

	// Delete removes a booking and releases all of its seats. Partial seat
	// release is not supported.
	Delete(ctx context.Context, id int) error
}
