package app

import (
	"errors"
	"net/http"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
)

// GetShowSeatLayout renders the full seating grid of a show for the admin
// view: every seat with its label, whether it is booked, and who holds
// it. Admin only, the owner identities are not for public eyes.
func (app *Application) GetShowSeatLayout(w http.ResponseWriter, r *http.Request) {
	showId, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, err = app.showRepo.GetById(r.Context(), showId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "show")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	bookings, err := app.bookingRepo.GetAllByShowId(r.Context(), showId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	layout := domain.ProjectSeatLayout(bookings)

	resp := api.SeatLayoutResponse{
		ShowId: showId,
		Seats:  make([]api.LayoutSeat, 0, len(layout)),
	}

	for _, status := range layout {
		seat := api.LayoutSeat{
			Label:  status.Label,
			Row:    status.Seat.Row,
			Col:    status.Seat.Col,
			Booked: status.Booked,
		}

		if status.Booked {
			seat.User = &api.BookingOwner{Name: status.OwnerName, Email: status.OwnerEmail}
		}

		resp.Seats = append(resp.Seats, seat)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
