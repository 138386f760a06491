package app

import (
	"errors"
	"net/http"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
)

func (app *Application) GetShows(w http.ResponseWriter, r *http.Request) {
	shows, err := app.showRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowListResponse{Shows: make([]api.ShowResponse, 0, len(shows))}
	for _, show := range shows {
		resp.Shows = append(resp.Shows, toShowResponse(&show))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShow(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	show, err := app.showRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "show")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req api.CreateShowRequest

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

	show := &domain.Show{
		MovieID:   req.MovieId,
		ScreenID:  req.ScreenId,
		StartTime: req.StartTime,
	}

	err = app.showRepo.Create(r.Context(), show)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieNotFound):
			app.entityNotFoundResponse(w, r, "movie")
		case errors.Is(err, domain.ErrScreenNotFound):
			app.entityNotFoundResponse(w, r, "screen")
		case errors.Is(err, domain.ErrDuplicateShow):
			app.conflictResponse(w, r, "The screen already has a show at this start time")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShow(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.UpdateShowRequest

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

	show, err := app.showRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "show")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if req.MovieId != nil {
		show.MovieID = *req.MovieId
	}
	if req.ScreenId != nil {
		show.ScreenID = *req.ScreenId
	}
	if req.StartTime != nil {
		show.StartTime = *req.StartTime
	}

	err = app.showRepo.Update(r.Context(), show)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.conflictResponse(w, r, "The show was modified concurrently, please try again")
		case errors.Is(err, domain.ErrMovieNotFound):
			app.entityNotFoundResponse(w, r, "movie")
		case errors.Is(err, domain.ErrScreenNotFound):
			app.entityNotFoundResponse(w, r, "screen")
		case errors.Is(err, domain.ErrDuplicateShow):
			app.conflictResponse(w, r, "The screen already has a show at this start time")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowResponse(show), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteShow removes the show together with all of its bookings in one
// transaction, so booked seats can never reference a deleted show.
func (app *Application) DeleteShow(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showRepo.DeleteCascade(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "show")
		default:
			app.cascadeFailedResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toShowResponse(show *domain.Show) api.ShowResponse {
	return api.ShowResponse{
		Id:        show.ID,
		MovieId:   show.MovieID,
		ScreenId:  show.ScreenID,
		StartTime: show.StartTime,
	}
}
