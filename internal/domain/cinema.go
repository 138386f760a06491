package domain

import (
	"context"
	"time"
)

type Cinema struct {
	ID        int
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CinemaRepository interface {
	GetAll(ctx context.Context) ([]Cinema, error)
	GetById(ctx context.Context, id int) (*Cinema, error)
	Create(ctx context.Context, cinema *Cinema) error
	Update(ctx context.Context, cinema *Cinema) error

	// DeleteCascade removes the cinema together with every screen it owns,
	// every show on those screens and every booking for those shows, in a
	// single transaction. Deletion order is leaf-to-root so no intermediate
	// state holds a dangling reference.
	DeleteCascade(ctx context.Context, id int) error
}
