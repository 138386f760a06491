package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	Duration    int // minutes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error

	// Delete removes a movie that has no scheduled shows. It returns
	// ErrHasDependents when shows still reference the movie, so that a
	// catalog delete can never leave a dangling movie reference behind.
	Delete(ctx context.Context, id int) error
}
