package mocks

import (
	"context"

	"github.com/cinetix/cinema-booking-system/internal/domain"
)

type MockCinemaRepo struct {
	domain.CinemaRepository
	GetAllFunc        func(ctx context.Context) ([]domain.Cinema, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Cinema, error)
	CreateFunc        func(ctx context.Context, cinema *domain.Cinema) error
	UpdateFunc        func(ctx context.Context, cinema *domain.Cinema) error
	DeleteCascadeFunc func(ctx context.Context, id int) error
}

func (m *MockCinemaRepo) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockCinemaRepo) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockCinemaRepo) Create(ctx context.Context, cinema *domain.Cinema) error {
	return m.CreateFunc(ctx, cinema)
}

func (m *MockCinemaRepo) Update(ctx context.Context, cinema *domain.Cinema) error {
	return m.UpdateFunc(ctx, cinema)
}

func (m *MockCinemaRepo) DeleteCascade(ctx context.Context, id int) error {
	return m.DeleteCascadeFunc(ctx, id)
}
