package repository

import (
	"context"
	"errors"

	"github.com/cinetix/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCinemaRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaRepository(db *pgxpool.Pool) *PostgresCinemaRepository {
	return &PostgresCinemaRepository{
		db: db,
	}
}

func (p *PostgresCinemaRepository) GetAll(ctx context.Context) ([]domain.Cinema, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM cinemas
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cinemas := make([]domain.Cinema, 0)

	for rows.Next() {
		var cinema domain.Cinema

		err := rows.Scan(
			&cinema.ID,
			&cinema.Name,
			&cinema.Location,
			&cinema.CreatedAt,
			&cinema.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		cinemas = append(cinemas, cinema)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return cinemas, nil
}

func (p *PostgresCinemaRepository) GetById(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM cinemas
		WHERE id = $1
	`

	var cinema domain.Cinema

	err := p.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.Name,
		&cinema.Location,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &cinema, nil
}

func (p *PostgresCinemaRepository) Create(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		INSERT INTO cinemas (name, location)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(ctx, query, cinema.Name, cinema.Location).
		Scan(&cinema.ID, &cinema.CreatedAt, &cinema.UpdatedAt)
}

func (p *PostgresCinemaRepository) Update(ctx context.Context, cinema *domain.Cinema) error {
	query := `
		UPDATE cinemas
		SET name = $1, location = $2, updated_at = NOW()
		WHERE id = $3 AND updated_at = $4
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx, query, cinema.Name, cinema.Location, cinema.ID, cinema.UpdatedAt).
		Scan(&cinema.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

// DeleteCascade removes the cinema and everything beneath it in one
// transaction. Bookings go first, then shows, then screens, then the
// cinema itself, so no statement ever orphans a dependent row.
func (p *PostgresCinemaRepository) DeleteCascade(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cinemas WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM bookings
			WHERE show_id IN (
				SELECT s.id
				FROM shows s
				JOIN screens sc ON s.screen_id = sc.id
				WHERE sc.cinema_id = $1
			)`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM shows
			WHERE screen_id IN (SELECT id FROM screens WHERE cinema_id = $1)`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM screens WHERE cinema_id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM cinemas WHERE id = $1`, id)

		return err
	})
}
