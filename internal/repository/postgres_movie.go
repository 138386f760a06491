package repository

import (
	"context"
	"errors"

	"github.com/cinetix/cinema-booking-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, description, duration, created_at, updated_at
		FROM movies
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, duration, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, description, duration)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(ctx, query, movie.Title, movie.Description, movie.Duration).
		Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
}

// Update matches on updated_at as well as id, so a row changed or removed
// since it was read comes back as an edit conflict.
func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, duration = $3, updated_at = NOW()
		WHERE id = $4 AND updated_at = $5
		RETURNING updated_at
	`

	err := p.db.QueryRow(ctx, query, movie.Title, movie.Description, movie.Duration, movie.ID, movie.UpdatedAt).
		Scan(&movie.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrRecordNotFound
		}

		// A movie with scheduled shows must not be deleted: removing it would
		// leave those shows pointing at nothing.
		var hasShows bool

		err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shows WHERE movie_id = $1)`, id).Scan(&hasShows)
		if err != nil {
			return err
		}
		if hasShows {
			return domain.ErrHasDependents
		}

		_, err = tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)

		return err
	})
}
