package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
	"github.com/aryaseta/movie-vault/internal/domain/repository"
)

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id string) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	if mv := args.Get(0); mv != nil {
		return mv.(*entity.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMovieRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.Movie, error) {
	args := m.Called(ctx, ownerID)
	if mv := args.Get(0); mv != nil {
		return mv.([]entity.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMovieRepo) SearchByOwner(ctx context.Context, ownerID, keyword string) ([]entity.Movie, error) {
	args := m.Called(ctx, ownerID, keyword)
	if mv := args.Get(0); mv != nil {
		return mv.([]entity.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var movieTestClock = fixedClock{t: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}

func newMovieService(repo *mockMovieRepo) *MovieService {
	return NewMovieService(repo, nil, nil, nil, movieTestClock)
}

func validInput() MovieInput {
	return MovieInput{
		Title:       "Inception",
		Director:    "Christopher Nolan",
		Genre:       "Sci-Fi",
		ReleaseYear: 2010,
		Rating:      8.8,
	}
}

func TestCreateMovie(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Movie")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Movie).ID = "movie-1"
	}).Return(nil)

	svc := newMovieService(repo)
	movie, err := svc.Create(context.Background(), "owner-1", validInput())

	assert.NoError(t, err)
	assert.Equal(t, "movie-1", movie.ID)
	assert.Equal(t, "owner-1", movie.OwnerID)
	assert.Equal(t, "Inception", movie.Title)
	repo.AssertExpectations(t)
}

func TestCreateMovieValidation(t *testing.T) {
	repo := new(mockMovieRepo)
	svc := newMovieService(repo)

	in := validInput()
	in.Rating = 10.5
	_, err := svc.Create(context.Background(), "owner-1", in)

	var verr *entity.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-1"}, nil)

	svc := newMovieService(repo)
	movie, err := svc.GetByID(context.Background(), "movie-1", "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, "movie-1", movie.ID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	svc := newMovieService(repo)
	_, err := svc.GetByID(context.Background(), "ghost", "owner-1")

	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestGetByIDOtherOwner(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-2"}, nil)

	svc := newMovieService(repo)
	movie, err := svc.GetByID(context.Background(), "movie-1", "owner-1")

	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Nil(t, movie, "another owner's record must never leak")
}

func TestUpdateMovie(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{
		ID: "movie-1", OwnerID: "owner-1",
		Title: "Inception", Director: "Christopher Nolan", Genre: "Sci-Fi", ReleaseYear: 2010, Rating: 8.8,
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Movie")).Return(nil)

	svc := newMovieService(repo)
	in := validInput()
	in.Title = "Tenet"
	in.ReleaseYear = 2020
	movie, err := svc.Update(context.Background(), "movie-1", "owner-1", in)

	assert.NoError(t, err)
	assert.Equal(t, "Tenet", movie.Title)
	assert.Equal(t, 2020, movie.ReleaseYear)
	repo.AssertExpectations(t)
}

func TestUpdateMovieRevalidates(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{
		ID: "movie-1", OwnerID: "owner-1",
		Title: "Inception", Director: "Christopher Nolan", Genre: "Sci-Fi", ReleaseYear: 2010, Rating: 8.8,
	}, nil)

	svc := newMovieService(repo)
	in := validInput()
	in.ReleaseYear = 1500
	_, err := svc.Update(context.Background(), "movie-1", "owner-1", in)

	var verr *entity.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "releaseYear", verr.Field)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateMovieNotOwner(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-2"}, nil)

	svc := newMovieService(repo)
	_, err := svc.Update(context.Background(), "movie-1", "owner-1", validInput())

	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteMovie(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-1"}, nil)
	repo.On("Delete", mock.Anything, "movie-1").Return(nil)

	svc := newMovieService(repo)
	err := svc.Delete(context.Background(), "movie-1", "owner-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Of two racing deletes only one wins: the repository reports zero affected
// rows for the loser, which surfaces as not-found.
func TestDeleteMovieRace(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-1"}, nil)
	repo.On("Delete", mock.Anything, "movie-1").Return(repository.ErrNotFound)

	svc := newMovieService(repo)
	err := svc.Delete(context.Background(), "movie-1", "owner-1")

	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestDeleteMovieNotOwner(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-2"}, nil)

	svc := newMovieService(repo)
	err := svc.Delete(context.Background(), "movie-1", "owner-1")

	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListMovies(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("ListByOwner", mock.Anything, "owner-1").Return([]entity.Movie{
		{ID: "movie-1", OwnerID: "owner-1"},
		{ID: "movie-2", OwnerID: "owner-1"},
	}, nil)

	svc := newMovieService(repo)
	movies, err := svc.List(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestSearchTrimsKeyword(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("SearchByOwner", mock.Anything, "owner-1", "nolan").Return([]entity.Movie{}, nil)

	svc := newMovieService(repo)
	movies, err := svc.Search(context.Background(), "owner-1", "  nolan  ")

	assert.NoError(t, err)
	assert.Empty(t, movies)
	repo.AssertCalled(t, "SearchByOwner", mock.Anything, "owner-1", "nolan")
}

func TestSearchBlankKeyword(t *testing.T) {
	repo := new(mockMovieRepo)
	svc := newMovieService(repo)

	_, err := svc.Search(context.Background(), "owner-1", "   ")

	assert.ErrorIs(t, err, ErrBlankKeyword)
	repo.AssertNotCalled(t, "SearchByOwner", mock.Anything, mock.Anything, mock.Anything)
}

// fakeStatsCache is an in-memory StatsCache recording deletions, standing in
// for redis.
type fakeStatsCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeStatsCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeStatsCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = b
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStatsCache) Del(ctx context.Context, key string) error {
	delete(f.entries, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStatsCache) prime(t *testing.T, ownerID string, stats MovieStats) string {
	t.Helper()
	key := statsCacheKey(ownerID)
	if err := f.SetJSON(context.Background(), key, stats, statsCacheTTL); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	return key
}

func TestCreateMovieInvalidatesStatsCache(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Movie")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Movie).ID = "movie-1"
	}).Return(nil)

	cache := newFakeStatsCache()
	key := cache.prime(t, "owner-1", MovieStats{TotalMovies: 1})

	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	_, err := svc.Create(context.Background(), "owner-1", validInput())

	assert.NoError(t, err)
	assert.Contains(t, cache.deleted, key)
	assert.NotContains(t, cache.entries, key)
}

func TestUpdateMovieInvalidatesStatsCache(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{
		ID: "movie-1", OwnerID: "owner-1",
		Title: "Inception", Director: "Christopher Nolan", Genre: "Sci-Fi", ReleaseYear: 2010, Rating: 8.8,
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Movie")).Return(nil)

	cache := newFakeStatsCache()
	key := cache.prime(t, "owner-1", MovieStats{TotalMovies: 1})

	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	_, err := svc.Update(context.Background(), "movie-1", "owner-1", validInput())

	assert.NoError(t, err)
	assert.Contains(t, cache.deleted, key)
}

func TestDeleteMovieInvalidatesStatsCache(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("GetByID", mock.Anything, "movie-1").Return(&entity.Movie{ID: "movie-1", OwnerID: "owner-1"}, nil)
	repo.On("Delete", mock.Anything, "movie-1").Return(nil)

	cache := newFakeStatsCache()
	key := cache.prime(t, "owner-1", MovieStats{TotalMovies: 1})

	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	err := svc.Delete(context.Background(), "movie-1", "owner-1")

	assert.NoError(t, err)
	assert.Contains(t, cache.deleted, key)
}

func TestCreateMovieValidationLeavesCacheAlone(t *testing.T) {
	repo := new(mockMovieRepo)
	cache := newFakeStatsCache()
	key := cache.prime(t, "owner-1", MovieStats{TotalMovies: 1})

	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	in := validInput()
	in.Rating = 10.5
	_, err := svc.Create(context.Background(), "owner-1", in)

	assert.Error(t, err)
	assert.Empty(t, cache.deleted)
	assert.Contains(t, cache.entries, key)
}

func TestStatsServedFromCache(t *testing.T) {
	repo := new(mockMovieRepo)
	cache := newFakeStatsCache()
	cache.prime(t, "owner-1", MovieStats{TotalMovies: 7, TopGenre: "Drama"})

	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	stats, err := svc.Stats(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, 7, stats.TotalMovies)
	assert.Equal(t, "Drama", stats.TopGenre)
	repo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

func TestStatsPopulatesCacheOnMiss(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("ListByOwner", mock.Anything, "owner-1").Return([]entity.Movie{
		{Director: "Nolan", Genre: "Sci-Fi", Rating: 8.8},
	}, nil)

	cache := newFakeStatsCache()
	svc := NewMovieService(repo, cache, nil, nil, movieTestClock)
	stats, err := svc.Stats(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMovies)

	key := statsCacheKey("owner-1")
	assert.Contains(t, cache.entries, key)
	assert.Equal(t, statsCacheTTL, cache.ttls[key])

	var cached MovieStats
	ok, err := cache.GetJSON(context.Background(), key, &cached)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, *stats, cached)
}

func TestStatsWithoutCache(t *testing.T) {
	repo := new(mockMovieRepo)
	repo.On("ListByOwner", mock.Anything, "owner-1").Return([]entity.Movie{
		{Director: "Frank Darabont", Genre: "Drama", Rating: 9.3},
		{Director: "Sam Mendes", Genre: "Drama", Rating: 7.0},
		{Director: "Francis Ford Coppola", Genre: "Crime", Rating: 9.2},
	}, nil)

	svc := newMovieService(repo)
	stats, err := svc.Stats(context.Background(), "owner-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalMovies)
	assert.Equal(t, "Drama", stats.TopGenre)
	assert.Equal(t, 8.5, stats.AverageRating)
}
