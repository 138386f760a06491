package domain

import (
	"context"
	"time"
)

type Screen struct {
	ID        int
	CinemaID  int
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ScreenRepository interface {
	GetAll(ctx context.Context) ([]Screen, error)
	GetById(ctx context.Context, id int) (*Screen, error)
	Create(ctx context.Context, screen *Screen) error
	Update(ctx context.Context, screen *Screen) error

	// DeleteCascade removes the screen, its shows and their bookings in a
	// single transaction, bookings first.
	DeleteCascade(ctx context.Context, id int) error
}
