package app

import (
	"errors"
	"net/http"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
)

func (app *Application) GetCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := app.cinemaRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CinemaListResponse{Cinemas: make([]api.CinemaResponse, 0, len(cinemas))}
	for _, cinema := range cinemas {
		resp.Cinemas = append(resp.Cinemas, toCinemaResponse(&cinema))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "cinemaID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cinema, err := app.cinemaRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "cinema")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toCinemaResponse(cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCinemaRequest

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

	cinema := &domain.Cinema{
		Name:     req.Name,
		Location: req.Location,
	}

	err = app.cinemaRepo.Create(r.Context(), cinema)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toCinemaResponse(cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "cinemaID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.UpdateCinemaRequest

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

	cinema, err := app.cinemaRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "cinema")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if req.Name != nil {
		cinema.Name = *req.Name
	}
	if req.Location != nil {
		cinema.Location = *req.Location
	}

	err = app.cinemaRepo.Update(r.Context(), cinema)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.conflictResponse(w, r, "The cinema was modified concurrently, please try again")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toCinemaResponse(cinema), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteCinema removes the cinema and everything under it: screens, their
// shows and those shows' bookings. The repository runs the whole cascade
// in one transaction, so a failure leaves the cinema fully intact.
func (app *Application) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "cinemaID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.cinemaRepo.DeleteCascade(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "cinema")
		default:
			app.cascadeFailedResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCinemaResponse(cinema *domain.Cinema) api.CinemaResponse {
	return api.CinemaResponse{
		Id:       cinema.ID,
		Name:     cinema.Name,
		Location: cinema.Location,
	}
}
