package domain

import (
	"context"
	"time"
)

type Show struct {
	ID        int
	MovieID   int
	ScreenID  int
	StartTime time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShowRepository interface {
	GetAll(ctx context.Context) ([]Show, error)
	GetById(ctx context.Context, id int) (*Show, error)

	// Create fails with ErrMovieNotFound or ErrScreenNotFound when the
	// referenced catalog entities do not exist, and ErrDuplicateShow when
	// the screen already has a show at the same start time.
	Create(ctx context.Context, show *Show) error
	Update(ctx context.Context, show *Show) error

	// DeleteCascade removes the show and its bookings in a single
	// transaction, bookings first.
	DeleteCascade(ctx context.Context, id int) error
}
