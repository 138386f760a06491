package repository

import (
	"context"
	"errors"

	"github.com/cinetix/cinema-booking-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking and its seats in one transaction. The unique
// index on booking_seats(show_id, seat_row, seat_col) makes the commit the
// serialization point: when two requests race for the same seat, exactly
// one commits and the other fails here with ErrSeatConflict.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var showExists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shows WHERE id = $1)`, booking.ShowID).Scan(&showExists)
		if err != nil {
			return err
		}
		if !showExists {
			return domain.ErrShowNotFound
		}

		query := `
			INSERT INTO bookings (user_id, show_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, booking.UserID, booking.ShowID).Scan(&booking.ID, &booking.CreatedAt)
		if err != nil {
			return err
		}

		for _, seat := range booking.Seats {
			_, err = tx.Exec(ctx, `
				INSERT INTO booking_seats (booking_id, show_id, seat_row, seat_col)
				VALUES ($1, $2, $3, $4)`,
				booking.ID, booking.ShowID, seat.Row, seat.Col)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return domain.ErrSeatConflict
				}

				return err
			}
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, show_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowID,
		&booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveSeats(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	booking.Seats = seats

	return &booking, nil
}

func (p *PostgresBookingRepository) retrieveSeats(ctx context.Context, bookingId int) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_col
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := p.db.Query(ctx, query, bookingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.Row, &seat.Col)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) GetAllByUserId(ctx context.Context, userId int) ([]domain.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.show_id, b.created_at, bs.seat_row, bs.seat_col
		FROM bookings b
		JOIN booking_seats bs ON bs.booking_id = b.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC, bs.seat_row, bs.seat_col
	`

	rows, err := p.db.Query(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var (
			booking domain.Booking
			seat    domain.Seat
		)

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowID,
			&booking.CreatedAt,
			&seat.Row,
			&seat.Col,
		)
		if err != nil {
			return nil, err
		}

		if n := len(bookings); n > 0 && bookings[n-1].ID == booking.ID {
			bookings[n-1].Seats = append(bookings[n-1].Seats, seat)
			continue
		}

		booking.Seats = []domain.Seat{seat}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) GetAllByShowId(ctx context.Context, showId int) ([]domain.ShowBooking, error) {
	query := `
		SELECT b.id, b.user_id, b.show_id, b.created_at, u.name, u.email, bs.seat_row, bs.seat_col
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN booking_seats bs ON bs.booking_id = b.id
		WHERE b.show_id = $1
		ORDER BY b.id, bs.seat_row, bs.seat_col
	`

	rows, err := p.db.Query(ctx, query, showId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.ShowBooking, 0)

	for rows.Next() {
		var (
			booking domain.ShowBooking
			seat    domain.Seat
		)

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowID,
			&booking.CreatedAt,
			&booking.OwnerName,
			&booking.OwnerEmail,
			&seat.Row,
			&seat.Col,
		)
		if err != nil {
			return nil, err
		}

		if n := len(bookings); n > 0 && bookings[n-1].ID == booking.ID {
			bookings[n-1].Seats = append(bookings[n-1].Seats, seat)
			continue
		}

		booking.Seats = []domain.Seat{seat}
		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (p *PostgresBookingRepository) GetSeatsByShowId(ctx context.Context, showId int) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_col
		FROM booking_seats
		WHERE show_id = $1
	`

	rows, err := p.db.Query(ctx, query, showId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err := rows.Scan(&seat.Row, &seat.Col)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) Delete(ctx context.Context, id int) error {
	// booking_seats rows go away with the booking via ON DELETE CASCADE;
	// the booking is the aggregate root for its seats.
	tag, err := p.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
