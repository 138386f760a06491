package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Staged selections live in redis keyed by the visitor's session token,
// so they survive restarts, follow the session cookie, and expire on
// their own when abandoned.
const selectionTTL = 10 * time.Minute

func selectionKey(token string) string {
	return "selection:" + token
}

func (app *Application) loadSelection(r *http.Request) (*domain.SeatSelection, error) {
	token := app.sessionManager.Token(r.Context())
	if token == "" {
		return nil, domain.ErrRecordNotFound
	}

	data, err := app.redis.Get(r.Context(), selectionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	var selection domain.SeatSelection
	if err := json.Unmarshal(data, &selection); err != nil {
		return nil, err
	}

	return &selection, nil
}

func (app *Application) saveSelection(r *http.Request, selection *domain.SeatSelection) error {
	token := app.sessionManager.Token(r.Context())
	if token == "" {
		// A brand-new session has no token until it is committed. Commit
		// now so the selection is stored under the token the client's
		// cookie will carry.
		var err error
		token, _, err = app.sessionManager.Commit(r.Context())
		if err != nil {
			return err
		}
	}

	data, err := json.Marshal(selection)
	if err != nil {
		return err
	}

	return app.redis.Set(r.Context(), selectionKey(token), data, selectionTTL).Err()
}

// CreateSelection starts an empty seat selection for the show, replacing
// whatever the session had staged before.
func (app *Application) CreateSelection(w http.ResponseWriter, r *http.Request) {
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

	selection := domain.NewSeatSelection(showId)

	err = app.saveSelection(r, &selection)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toSelectionResponse(&selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSelection(w http.ResponseWriter, r *http.Request) {
	showId, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	selection, err := app.loadSelection(r)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "selection")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if selection.ShowID != showId {
		app.entityNotFoundResponse(w, r, "selection")
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSelectionResponse(selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ToggleSelectionSeat stages a seat, or unstages it when it is already
// staged. A selection that targeted a different show is reset to this
// show first, so stale seats never leak across shows.
func (app *Application) ToggleSelectionSeat(w http.ResponseWriter, r *http.Request) {
	showId, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.ToggleSeatRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
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

	selection, err := app.loadSelection(r)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "selection")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if selection.ShowID != showId {
		selection.Reset(showId)
	}

	bookedSeats, err := app.bookingRepo.GetSeatsByShowId(r.Context(), showId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	booked := make(map[domain.Seat]bool, len(bookedSeats))
	for _, seat := range bookedSeats {
		booked[seat] = true
	}

	err = selection.Toggle(domain.Seat{Row: req.Row, Col: req.Col}, booked)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatOutOfRange):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrSeatConflict):
			app.conflictResponse(w, r, "The seat is already booked for this show")
		case errors.Is(err, domain.ErrSelectionFull):
			app.unprocessableEntityResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.saveSelection(r, selection)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSelectionResponse(selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	_, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token := app.sessionManager.Token(r.Context())
	if token != "" {
		err = app.redis.Del(r.Context(), selectionKey(token)).Err()
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSelectionResponse(selection *domain.SeatSelection) api.SelectionResponse {
	return api.SelectionResponse{
		SelectionId: selection.ID,
		ShowId:      selection.ShowID,
		Seats:       toAPISeats(selection.Seats),
	}
}
