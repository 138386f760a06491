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

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) GetAll(ctx context.Context) ([]domain.Show, error) {
	query := `
		SELECT id, movie_id, screen_id, start_time, created_at, updated_at
		FROM shows
		ORDER BY start_time, id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]domain.Show, 0)

	for rows.Next() {
		var show domain.Show

		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.ScreenID,
			&show.StartTime,
			&show.CreatedAt,
			&show.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := `
		SELECT id, movie_id, screen_id, start_time, created_at, updated_at
		FROM shows
		WHERE id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.ScreenID,
		&show.StartTime,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &show, nil
}

func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := checkShowReferences(ctx, tx, show)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO shows (movie_id, screen_id, start_time)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRow(ctx, query, show.MovieID, show.ScreenID, show.StartTime).
			Scan(&show.ID, &show.CreatedAt, &show.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrDuplicateShow
			}

			return err
		}

		return nil
	})
}

func (p *PostgresShowRepository) Update(ctx context.Context, show *domain.Show) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := checkShowReferences(ctx, tx, show)
		if err != nil {
			return err
		}

		query := `
			UPDATE shows
			SET movie_id = $1, screen_id = $2, start_time = $3, updated_at = NOW()
			WHERE id = $4 AND updated_at = $5
			RETURNING updated_at
		`

		err = tx.QueryRow(ctx, query, show.MovieID, show.ScreenID, show.StartTime, show.ID, show.UpdatedAt).
			Scan(&show.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrEditConflict
			}

			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrDuplicateShow
			}

			return err
		}

		return nil
	})
}

// checkShowReferences verifies that the movie and screen a show points at
// actually exist, so the error can name the missing entity instead of
// surfacing a bare foreign key violation.
func checkShowReferences(ctx context.Context, tx pgx.Tx, show *domain.Show) error {
	var movieExists, screenExists bool

	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, show.MovieID).Scan(&movieExists)
	if err != nil {
		return err
	}
	if !movieExists {
		return domain.ErrMovieNotFound
	}

	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM screens WHERE id = $1)`, show.ScreenID).Scan(&screenExists)
	if err != nil {
		return err
	}
	if !screenExists {
		return domain.ErrScreenNotFound
	}

	return nil
}

func (p *PostgresShowRepository) DeleteCascade(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shows WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM bookings WHERE show_id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)

		return err
	})
}
