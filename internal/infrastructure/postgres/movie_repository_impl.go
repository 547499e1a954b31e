package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
	"github.com/aryaseta/movie-vault/internal/domain/repository"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

const movieColumns = `id, title, director, genre, release_year, rating, owner_id, created_at, updated_at`

func (r *MovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movies (title, director, genre, release_year, rating, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, m.Title, m.Director, m.Genre, m.ReleaseYear, m.Rating, m.OwnerID)

	return row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*entity.Movie, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE id = $1
	`, id)

	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *entity.Movie) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE movies
		SET title = $1, director = $2, genre = $3, release_year = $4, rating = $5, updated_at = now()
		WHERE id = $6
	`, m.Title, m.Director, m.Genre, m.ReleaseYear, m.Rating, m.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete reports ErrNotFound when no row was removed, so of two racing
// deletes only one can claim success.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Movie, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

// SearchByOwner filters in SQL so only the owner's rows are ever read.
// ILIKE gives the case-insensitive substring match; release year and rating
// are matched against their text form. The keyword is escaped so LIKE
// metacharacters in it match literally, not as wildcards.
func (r *MovieRepository) SearchByOwner(ctx context.Context, ownerID, keyword string) ([]entity.Movie, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE owner_id = $1
		  AND (title ILIKE '%' || $2 || '%' ESCAPE '\'
		    OR director ILIKE '%' || $2 || '%' ESCAPE '\'
		    OR genre ILIKE '%' || $2 || '%' ESCAPE '\'
		    OR release_year::text LIKE '%' || $2 || '%' ESCAPE '\'
		    OR rating::text LIKE '%' || $2 || '%' ESCAPE '\')
		ORDER BY created_at, id
	`, ownerID, escapeLike(keyword))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMovies(rows)
}

// escapeLike neutralizes the LIKE metacharacters, so a keyword like "_" or
// "100%" is matched as literal text instead of as a wildcard pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	m := &entity.Movie{}
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.ReleaseYear, &m.Rating, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func collectMovies(rows pgx.Rows) ([]entity.Movie, error) {
	movies := make([]entity.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
