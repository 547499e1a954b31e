package entity

import (
	"fmt"
	"strings"
	"time"
)

// No film predates the Roundhay Garden Scene; the upper bound leaves room
// for announced releases.
const (
	firstMovieYear   = 1888
	futureYearWindow = 5

	maxTitleLen    = 200
	maxDirectorLen = 100
	maxGenreLen    = 50
)

// Movie is a single entry in a user's collection. All fields are validated
// on construction and on every mutation; use NewMovie and the Set* methods,
// never build the struct by hand.
type Movie struct {
	ID          string
	Title       string
	Director    string
	Genre       string
	ReleaseYear int
	Rating      float64
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMovie validates every field and binds the movie to its owner. The owner
// reference is immutable afterwards. ID and timestamps are assigned by the
// repository on insert.
func NewMovie(title, director, genre string, releaseYear int, rating float64, ownerID string, clock Clock) (*Movie, error) {
	if clock == nil {
		clock = systemClock{}
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDirector(director); err != nil {
		return nil, err
	}
	if err := validateGenre(genre); err != nil {
		return nil, err
	}
	if err := validateReleaseYear(releaseYear, clock); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, &ValidationError{Field: "ownerId", Message: "cannot be empty"}
	}
	return &Movie{
		Title:       title,
		Director:    director,
		Genre:       genre,
		ReleaseYear: releaseYear,
		Rating:      rating,
		OwnerID:     ownerID,
	}, nil
}

func (m *Movie) SetTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	m.Title = title
	return nil
}

func (m *Movie) SetDirector(director string) error {
	if err := validateDirector(director); err != nil {
		return err
	}
	m.Director = director
	return nil
}

func (m *Movie) SetGenre(genre string) error {
	if err := validateGenre(genre); err != nil {
		return err
	}
	m.Genre = genre
	return nil
}

// SetReleaseYear checks the upper bound against the clock at call time, not
// against whatever year the movie was first validated in.
func (m *Movie) SetReleaseYear(releaseYear int, clock Clock) error {
	if clock == nil {
		clock = systemClock{}
	}
	if err := validateReleaseYear(releaseYear, clock); err != nil {
		return err
	}
	m.ReleaseYear = releaseYear
	return nil
}

func (m *Movie) SetRating(rating float64) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	m.Rating = rating
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if len(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("cannot exceed %d characters", maxTitleLen)}
	}
	return nil
}

func validateDirector(director string) error {
	if strings.TrimSpace(director) == "" {
		return &ValidationError{Field: "director", Message: "cannot be empty"}
	}
	if len(director) > maxDirectorLen {
		return &ValidationError{Field: "director", Message: fmt.Sprintf("cannot exceed %d characters", maxDirectorLen)}
	}
	return nil
}

func validateGenre(genre string) error {
	if strings.TrimSpace(genre) == "" {
		return &ValidationError{Field: "genre", Message: "cannot be empty"}
	}
	if len(genre) > maxGenreLen {
		return &ValidationError{Field: "genre", Message: fmt.Sprintf("cannot exceed %d characters", maxGenreLen)}
	}
	return nil
}

func validateReleaseYear(releaseYear int, clock Clock) error {
	maxYear := clock.Now().Year() + futureYearWindow
	if releaseYear < firstMovieYear || releaseYear > maxYear {
		return &ValidationError{
			Field:   "releaseYear",
			Message: fmt.Sprintf("must be between %d and %d", firstMovieYear, maxYear),
		}
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < 0 || rating > 10 {
		return &ValidationError{Field: "rating", Message: "must be between 0 and 10"}
	}
	return nil
}
