package mocks

import (
	"context"

	"github.com/cinetix/cinema-booking-system/internal/domain"
)

type MockScreenRepo struct {
	domain.ScreenRepository
	GetAllFunc        func(ctx context.Context) ([]domain.Screen, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Screen, error)
	CreateFunc        func(ctx context.Context, screen *domain.Screen) error
	UpdateFunc        func(ctx context.Context, screen *domain.Screen) error
	DeleteCascadeFunc func(ctx context.Context, id int) error
}

func (m *MockScreenRepo) GetAll(ctx context.Context) ([]domain.Screen, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockScreenRepo) GetById(ctx context.Context, id int) (*domain.Screen, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockScreenRepo) Create(ctx context.Context, screen *domain.Screen) error {
	return m.CreateFunc(ctx, screen)
}

func (m *MockScreenRepo) Update(ctx context.Context, screen *domain.Screen) error {
	return m.UpdateFunc(ctx, screen)
}

func (m *MockScreenRepo) DeleteCascade(ctx context.Context, id int) error {
	return m.DeleteCascadeFunc(ctx, id)
}
