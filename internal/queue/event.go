package queue

import "time"

// Queue names the publisher declares and publishes to.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

type BookingCreatedEvent struct {
	BookingID int       `json:"bookingId"`
	ShowID    int       `json:"showId"`
	UserID    int       `json:"userId"`
	Seats     []string  `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingCancelledEvent struct {
	BookingID   int       `json:"bookingId"`
	ShowID      int       `json:"showId"`
	UserID      int       `json:"userId"`
	CancelledAt time.Time `json:"cancelledAt"`
}
