package domain

// SeatStatus describes one seat of the fixed grid in the administrative
// layout view: its canonical coordinates, display label, and, when the
// seat is booked, the owning user's display identity.
type SeatStatus struct {
	Seat       Seat
	Label      string
	Booked     bool
	OwnerName  string
	OwnerEmail string
}

// ProjectSeatLayout maps a show's bookings onto the fixed seating grid.
// It is a pure function of the bookings passed in; seats are emitted in
// row-major order (A1..A10, B1..B10, ...).
func ProjectSeatLayout(bookings []ShowBooking) []SeatStatus {
	type owner struct {
		name  string
		email string
	}

	booked := make(map[Seat]owner)
	for _, b := range bookings {
		for _, seat := range b.Seats {
			booked[seat] = owner{name: b.OwnerName, email: b.OwnerEmail}
		}
	}

	layout := make([]SeatStatus, 0, SeatGridRows*SeatGridCols)

	for row := 0; row < SeatGridRows; row++ {
		for col := 0; col < SeatGridCols; col++ {
			seat := Seat{Row: row, Col: col}
			status := SeatStatus{Seat: seat, Label: seat.Label()}

			if o, ok := booked[seat]; ok {
				status.Booked = true
				status.OwnerName = o.name
				status.OwnerEmail = o.email
			}

			layout = append(layout, status)
		}
	}

	return layout
}
