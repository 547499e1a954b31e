package repository

import (
	"context"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
)

// UserRepository is the persistence contract for users. Create fills in the
// assigned ID and timestamps; uniqueness of email and username is enforced
// atomically by the implementation and surfaces as ErrDuplicateEmail /
// ErrDuplicateUsername even under concurrent registrations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
