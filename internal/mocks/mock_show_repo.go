package mocks

import (
	"context"

	"github.com/cinetix/cinema-booking-system/internal/domain"
)

type MockShowRepo struct {
	domain.ShowRepository
	GetAllFunc        func(ctx context.Context) ([]domain.Show, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Show, error)
	CreateFunc        func(ctx context.Context, show *domain.Show) error
	UpdateFunc        func(ctx context.Context, show *domain.Show) error
	DeleteCascadeFunc func(ctx context.Context, id int) error
}

func (m *MockShowRepo) GetAll(ctx context.Context) ([]domain.Show, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockShowRepo) GetById(ctx context.Context, id int) (*domain.Show, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowRepo) Create(ctx context.Context, show *domain.Show) error {
	return m.CreateFunc(ctx, show)
}

func (m *MockShowRepo) Update(ctx context.Context, show *domain.Show) error {
	return m.UpdateFunc(ctx, show)
}

func (m *MockShowRepo) DeleteCascade(ctx context.Context, id int) error {
	return m.DeleteCascadeFunc(ctx, id)
}
