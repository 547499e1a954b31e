package repository

import (
	"context"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
)

// MovieRepository is the persistence contract for movies. List and Search
// scope at the query level: only rows whose owner matches are ever read, so
// other owners' movies cannot leak into results. Update and Delete report
// ErrNotFound when the row is gone, which keeps concurrent deletes of the
// same movie from both claiming success.
type MovieRepository interface {
	Create(ctx context.Context, m *entity.Movie) error
	GetByID(ctx context.Context, id string) (*entity.Movie, error)
	Update(ctx context.Context, m *entity.Movie) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Movie, error)
	SearchByOwner(ctx context.Context, ownerID, keyword string) ([]entity.Movie, error)
}
