package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrMovieNotFound  = errors.New("movie not found")
	ErrScreenNotFound = errors.New("screen not found")
	ErrShowNotFound   = errors.New("show not found")
	ErrEditConflict   = errors.New("edit conflict")
	ErrSeatConflict   = errors.New("seat(s) are already booked for this show")
	ErrSelectionFull  = errors.New("a booking cannot hold more than 6 seats")
	ErrSeatOutOfRange = errors.New("seat is outside the seating grid")
	ErrForbidden      = errors.New("operation not permitted for this user")
	ErrHasDependents  = errors.New("entity has dependent records and cannot be deleted")
	ErrDuplicateShow  = errors.New("a show already exists on this screen at this time")
	ErrDuplicateName  = errors.New("an entity with this name already exists")
)
