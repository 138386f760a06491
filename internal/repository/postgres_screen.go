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

type PostgresScreenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreenRepository(db *pgxpool.Pool) *PostgresScreenRepository {
	return &PostgresScreenRepository{
		db: db,
	}
}

func (p *PostgresScreenRepository) GetAll(ctx context.Context) ([]domain.Screen, error) {
	query := `
		SELECT id, cinema_id, name, created_at, updated_at
		FROM screens
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screens := make([]domain.Screen, 0)

	for rows.Next() {
		var screen domain.Screen

		err := rows.Scan(
			&screen.ID,
			&screen.CinemaID,
			&screen.Name,
			&screen.CreatedAt,
			&screen.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		screens = append(screens, screen)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screens, nil
}

func (p *PostgresScreenRepository) GetById(ctx context.Context, id int) (*domain.Screen, error) {
	query := `
		SELECT id, cinema_id, name, created_at, updated_at
		FROM screens
		WHERE id = $1
	`

	var screen domain.Screen

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screen.ID,
		&screen.CinemaID,
		&screen.Name,
		&screen.CreatedAt,
		&screen.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screen, nil
}

func (p *PostgresScreenRepository) Create(ctx context.Context, screen *domain.Screen) error {
	query := `
		INSERT INTO screens (cinema_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(ctx, query, screen.CinemaID, screen.Name).
		Scan(&screen.ID, &screen.CreatedAt, &screen.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrRecordNotFound
			case pgerrcode.UniqueViolation:
				return domain.ErrDuplicateName
			}
		}

		return err
	}

	return nil
}

func (p *PostgresScreenRepository) Update(ctx context.Context, screen *domain.Screen) error {
	query := `
		UPDATE screens
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND updated_at = $3
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx, query, screen.Name, screen.ID, screen.UpdatedAt).Scan(&screen.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateName
		}

		return err
	}

	return nil
}

func (p *PostgresScreenRepository) DeleteCascade(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM screens WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM bookings
			WHERE show_id IN (SELECT id FROM shows WHERE screen_id = $1)`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM shows WHERE screen_id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM screens WHERE id = $1`, id)

		return err
	})
}
