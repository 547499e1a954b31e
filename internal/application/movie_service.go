package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
	"github.com/aryaseta/movie-vault/internal/domain/repository"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

const statsCacheTTL = 5 * time.Minute

func statsCacheKey(ownerID string) string { return "movies:stats:" + ownerID }

// MovieEvent is the JSON payload published to the movie-events queue after
// every successful write, consumed by cmd/statsjob.
type MovieEvent struct {
	Action  string `json:"action"` // created, updated, deleted
	MovieID string `json:"movie_id"`
	OwnerID string `json:"owner_id"`
}

// StatsCache is the slice of the cache the movie service needs. Satisfied by
// helpers.RedisCache in production, by an in-memory fake in tests.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// MovieService implements the owner-scoped movie use cases. It is stateless
// and safe for concurrent use; Cache, Pub and Logger may be nil, in which
// case caching, events and logging degrade silently. A cache or broker
// outage never fails a request.
type MovieService struct {
	Movies repository.MovieRepository
	Cache  StatsCache
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
	Clock  entity.Clock
}

func NewMovieService(movies repository.MovieRepository, cache StatsCache, pub *helpers.RabbitPublisher, logger *logrus.Logger, clock entity.Clock) *MovieService {
	if clock == nil {
		clock = entity.SystemClock()
	}
	return &MovieService{Movies: movies, Cache: cache, Pub: pub, Logger: logger, Clock: clock}
}

// MovieInput carries the mutable fields for create and update.
type MovieInput struct {
	Title       string
	Director    string
	Genre       string
	ReleaseYear int
	Rating      float64
}

// Create validates through the entity factory and persists under ownerID.
// ValidationError propagates to the caller untouched.
func (s *MovieService) Create(ctx context.Context, ownerID string, in MovieInput) (*entity.Movie, error) {
	movie, err := entity.NewMovie(in.Title, in.Director, in.Genre, in.ReleaseYear, in.Rating, ownerID, s.Clock)
	if err != nil {
		return nil, err
	}
	if err := s.Movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, ownerID)
	s.publishEvent(ctx, "created", movie.ID, ownerID)
	return movie, nil
}

// GetByID distinguishes "absent" (ErrMovieNotFound) from "not owned"
// (ErrNotOwner). In the second case no record is returned, so the transport
// can choose 404 over 403 without ever disclosing another owner's data.
func (s *MovieService) GetByID(ctx context.Context, id, callerID string) (*entity.Movie, error) {
	movie, err := s.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if !Owns(movie.OwnerID, callerID) {
		return nil, ErrNotOwner
	}
	return movie, nil
}

// Update re-validates every field through the entity mutators and persists
// the result. Existence and ownership are checked first.
func (s *MovieService) Update(ctx context.Context, id, callerID string, in MovieInput) (*entity.Movie, error) {
	movie, err := s.GetByID(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := movie.SetTitle(in.Title); err != nil {
		return nil, err
	}
	if err := movie.SetDirector(in.Director); err != nil {
		return nil, err
	}
	if err := movie.SetGenre(in.Genre); err != nil {
		return nil, err
	}
	if err := movie.SetReleaseYear(in.ReleaseYear, s.Clock); err != nil {
		return nil, err
	}
	if err := movie.SetRating(in.Rating); err != nil {
		return nil, err
	}
	if err := s.Movies.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	s.invalidateStats(ctx, callerID)
	s.publishEvent(ctx, "updated", movie.ID, callerID)
	return movie, nil
}

// Delete removes the caller's movie. Deleting twice reports ErrMovieNotFound
// on the second call, also when two deletes race: the repository maps zero
// affected rows to not-found.
func (s *MovieService) Delete(ctx context.Context, id, callerID string) error {
	movie, err := s.GetByID(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := s.Movies.Delete(ctx, movie.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	s.invalidateStats(ctx, callerID)
	s.publishEvent(ctx, "deleted", movie.ID, callerID)
	return nil
}

// List returns all of the caller's movies, never anyone else's.
func (s *MovieService) List(ctx context.Context, callerID string) ([]entity.Movie, error) {
	return s.Movies.ListByOwner(ctx, callerID)
}

// Search matches the keyword case-insensitively as a substring of title,
// director, genre, stringified release year or stringified rating, scoped to
// the caller's movies at the query level.
func (s *MovieService) Search(ctx context.Context, callerID, keyword string) ([]entity.Movie, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrBlankKeyword
	}
	return s.Movies.SearchByOwner(ctx, callerID, keyword)
}

// Stats aggregates the caller's collection, serving from the per-owner redis
// cache when possible. Every write invalidates the cache, so a short TTL is
// only a backstop.
func (s *MovieService) Stats(ctx context.Context, callerID string) (*MovieStats, error) {
	if s.Cache != nil {
		var cached MovieStats
		if ok, err := s.Cache.GetJSON(ctx, statsCacheKey(callerID), &cached); err == nil && ok {
			return &cached, nil
		} else if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache read failed")
		}
	}

	movies, err := s.Movies.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(movies)

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, statsCacheKey(callerID), stats, statsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return &stats, nil
}

func (s *MovieService) invalidateStats(ctx context.Context, ownerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, statsCacheKey(ownerID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("owner_id", ownerID).Warn("stats cache invalidation failed")
	}
}

func (s *MovieService) publishEvent(ctx context.Context, action, movieID, ownerID string) {
	if s.Pub == nil {
		return
	}
	ev := MovieEvent{Action: action, MovieID: movieID, OwnerID: ownerID}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"action": action, "movie_id": movieID}).Warn("publish movie event failed")
	}
}
