package app

import (
	"errors"
	"net/http"

	"github.com/cinetix/cinema-booking-system/api"
	"github.com/cinetix/cinema-booking-system/internal/domain"
)

func (app *Application) GetScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := app.screenRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreenListResponse{Screens: make([]api.ScreenResponse, 0, len(screens))}
	for _, screen := range screens {
		resp.Screens = append(resp.Screens, toScreenResponse(&screen))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetScreen(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "screenID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screen, err := app.screenRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "screen")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var req api.CreateScreenRequest

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

	screen := &domain.Screen{
		CinemaID: req.CinemaId,
		Name:     req.Name,
	}

	err = app.screenRepo.Create(r.Context(), screen)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "cinema")
		case errors.Is(err, domain.ErrDuplicateName):
			app.conflictResponse(w, r, "The cinema already has a screen with this name")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "screenID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.UpdateScreenRequest

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

	screen, err := app.screenRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "screen")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if req.Name != nil {
		screen.Name = *req.Name
	}

	err = app.screenRepo.Update(r.Context(), screen)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			app.conflictResponse(w, r, "The screen was modified concurrently, please try again")
		case errors.Is(err, domain.ErrDuplicateName):
			app.conflictResponse(w, r, "The cinema already has a screen with this name")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toScreenResponse(screen), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteScreen removes the screen, its shows and their bookings in one
// transaction.
func (app *Application) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "screenID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.screenRepo.DeleteCascade(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.entityNotFoundResponse(w, r, "screen")
		default:
			app.cascadeFailedResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toScreenResponse(screen *domain.Screen) api.ScreenResponse {
	return api.ScreenResponse{
		Id:       screen.ID,
		CinemaId: screen.CinemaID,
		Name:     screen.Name,
	}
}
