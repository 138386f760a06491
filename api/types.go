// Package api defines the request and response types of the HTTP API.
package api

import "time"

// Movies

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0"`
}

type MovieResponse struct {
	Id          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

// Cinemas

type CreateCinemaRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Location string `json:"location" validate:"required,max=255"`
}

type UpdateCinemaRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=150"`
	Location *string `json:"location" validate:"omitempty,min=1,max=255"`
}

type CinemaResponse struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type CinemaListResponse struct {
	Cinemas []CinemaResponse `json:"cinemas"`
}

// Screens

type CreateScreenRequest struct {
	CinemaId int    `json:"cinemaId" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,max=100"`
}

type UpdateScreenRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type ScreenResponse struct {
	Id       int    `json:"id"`
	CinemaId int    `json:"cinemaId"`
	Name     string `json:"name"`
}

type ScreenListResponse struct {
	Screens []ScreenResponse `json:"screens"`
}

// Shows

type CreateShowRequest struct {
	MovieId   int       `json:"movieId" validate:"required,gt=0"`
	ScreenId  int       `json:"screenId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
}

type UpdateShowRequest struct {
	MovieId   *int       `json:"movieId" validate:"omitempty,gt=0"`
	ScreenId  *int       `json:"screenId" validate:"omitempty,gt=0"`
	StartTime *time.Time `json:"startTime" validate:"omitempty"`
}

type ShowResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	ScreenId  int       `json:"screenId"`
	StartTime time.Time `json:"startTime"`
}

type ShowListResponse struct {
	Shows []ShowResponse `json:"shows"`
}

// Bookings

type Seat struct {
	Row int `json:"row" validate:"min=0,max=9"`
	Col int `json:"col" validate:"min=0,max=9"`
}

type CreateBookingRequest struct {
	ShowId int    `json:"showId" validate:"required,gt=0"`
	Seats  []Seat `json:"seats" validate:"required,min=1,max=6,unique,dive"`
}

type BookingResponse struct {
	Id        int       `json:"id"`
	UserId    int       `json:"userId"`
	ShowId    int       `json:"showId"`
	Seats     []Seat    `json:"seats"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type BookingOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ShowBooking struct {
	Id        int          `json:"id"`
	Seats     []Seat       `json:"seats"`
	User      BookingOwner `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ShowBookingListResponse struct {
	Bookings []ShowBooking `json:"bookings"`
}

// Seat selection

type ToggleSeatRequest struct {
	Row int `json:"row" validate:"min=0,max=9"`
	Col int `json:"col" validate:"min=0,max=9"`
}

type SelectionResponse struct {
	SelectionId string `json:"selectionId"`
	ShowId      int    `json:"showId"`
	Seats       []Seat `json:"seats"`
}

// Seat layout

type LayoutSeat struct {
	Label  string        `json:"label"`
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	Booked bool          `json:"booked"`
	User   *BookingOwner `json:"user,omitempty"`
}

type SeatLayoutResponse struct {
	ShowId int          `json:"showId"`
	Seats  []LayoutSeat `json:"seats"`
}

// Healthcheck

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
