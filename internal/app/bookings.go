package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
	"github.com/cinetix/cinema-booking-system/internal/queue"
)

// CreateBooking commits the submitted seats for a show. The repository
// enforces seat exclusivity at commit time, so when two users race for
// the same seat exactly one booking succeeds and the other gets a
// conflict. On success the staged selection is discarded, a confirmation
// mail is sent and a booking.created event is published, both off the
// request path.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBookingRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := contextGetUserId(r)

	seats := make([]domain.Seat, 0, len(req.Seats))
	for _, seat := range req.Seats {
		seats = append(seats, domain.Seat{Row: seat.Row, Col: seat.Col})
	}

	booking := &domain.Booking{
		UserID: userId,
		ShowID: req.ShowId,
		Seats:  seats,
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowNotFound):
			app.entityNotFoundResponse(w, r, "show")
		case errors.Is(err, domain.ErrSeatConflict):
			app.conflictResponse(w, r, "One or more of the selected seats are already booked for this show")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if token := app.sessionManager.Token(r.Context()); token != "" {
		// Best effort, a stale selection only costs redis memory until it
		// expires.
		if err := app.redis.Del(r.Context(), selectionKey(token)).Err(); err != nil {
			app.contextGetLogger(r).Warn("cannot discard seat selection", "error", err)
		}
	}

	logger := app.contextGetLogger(r)

	labels := make([]string, 0, len(booking.Seats))
	for _, seat := range booking.Seats {
		labels = append(labels, seat.Label())
	}

	app.background(logger, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := app.userRepo.GetById(ctx, userId)
		if err != nil {
			logger.Error("cannot load user for booking confirmation", "error", err)
			return
		}

		data := map[string]any{
			"name":      user.Name,
			"bookingID": booking.ID,
			"seats":     labels,
		}

		if err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data); err != nil {
			logger.Error("cannot send booking confirmation mail", "error", err)
		}
	})

	app.background(logger, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.BookingCreatedEvent{
			BookingID: booking.ID,
			ShowID:    booking.ShowID,
			UserID:    booking.UserID,
			Seats:     labels,
			CreatedAt: booking.CreatedAt,
		}

		if err := app.events.Publish(ctx, queue.BookingCreatedQueue, event); err != nil {
			logger.Error("cannot publish booking created event", "error", err)
		}
	})

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userId := contextGetUserId(r)

	bookings, err := app.bookingRepo.GetAllByUserId(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{Bookings: make([]api.BookingResponse, 0, len(bookings))}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(&booking))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking deletes the caller's booking, releasing every seat it
// held. Only the owner may cancel; admins use the show-level views
// instead of cancelling on a user's behalf.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userId := contextGetUserId(r)

	booking, err := app.bookingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "booking")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if booking.UserID != userId {
		app.forbiddenResponse(w, r)
		return
	}

	err = app.bookingRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "booking")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	logger := app.contextGetLogger(r)

	app.background(logger, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.BookingCancelledEvent{
			BookingID:   booking.ID,
			ShowID:      booking.ShowID,
			UserID:      booking.UserID,
			CancelledAt: time.Now(),
		}

		if err := app.events.Publish(ctx, queue.BookingCancelledQueue, event); err != nil {
			logger.Error("cannot publish booking cancelled event", "error", err)
		}
	})

	w.WriteHeader(http.StatusNoContent)
}

// GetShowBookings lists every booking of a show with its owner's display
// identity. Admin only.
func (app *Application) GetShowBookings(w http.ResponseWriter, r *http.Request) {
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

	resp := api.ShowBookingListResponse{Bookings: make([]api.ShowBooking, 0, len(bookings))}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, api.ShowBooking{
			Id:        booking.ID,
			Seats:     toAPISeats(booking.Seats),
			User:      api.BookingOwner{Name: booking.OwnerName, Email: booking.OwnerEmail},
			CreatedAt: booking.CreatedAt,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:        booking.ID,
		UserId:    booking.UserID,
		ShowId:    booking.ShowID,
		Seats:     toAPISeats(booking.Seats),
		CreatedAt: booking.CreatedAt,
	}
}

func toAPISeats(seats []domain.Seat) []api.Seat {
	out := make([]api.Seat, 0, len(seats))
	for _, seat := range seats {
		out = append(out, api.Seat{Row: seat.Row, Col: seat.Col})
	}

	return out
}
