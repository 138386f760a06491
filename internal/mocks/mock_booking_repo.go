package mocks

import (
	"context"

	"github.com/cinetix/cinema-booking-system/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	CreateFunc           func(ctx context.Context, booking *domain.Booking) error
	GetByIdFunc          func(ctx context.Context, id int) (*domain.Booking, error)
	GetAllByUserIdFunc   func(ctx context.Context, userId int) ([]domain.Booking, error)
	GetAllByShowIdFunc   func(ctx context.Context, showId int) ([]domain.ShowBooking, error)
	GetSeatsByShowIdFunc func(ctx context.Context, showId int) ([]domain.Seat, error)
	DeleteFunc           func(ctx context.Context, id int) error
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockBookingRepo) GetAllByUserId(ctx context.Context, userId int) ([]domain.Booking, error) {
	return m.GetAllByUserIdFunc(ctx, userId)
}

func (m *MockBookingRepo) GetAllByShowId(ctx context.Context, showId int) ([]domain.ShowBooking, error) {
	return m.GetAllByShowIdFunc(ctx, showId)
}

func (m *MockBookingRepo) GetSeatsByShowId(ctx context.Context, showId int) ([]domain.Seat, error) {
	return m.GetSeatsByShowIdFunc(ctx, showId)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
