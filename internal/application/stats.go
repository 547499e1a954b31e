package application

import (
	"math"

	"github.com/aryaseta/movie-vault/internal/domain/entity"
)

// MovieStats summarizes one user's collection. Field names on the wire
// follow the API contract.
type MovieStats struct {
	TotalMovies               int     `json:"totalMovies"`
	TotalGenres               int     `json:"totalGenres"`
	TopGenre                  string  `json:"topGenre"`
	TopGenreCount             int     `json:"topGenreCount"`
	AverageRating             float64 `json:"averageRating"`
	HighestRating             float64 `json:"highestRating"`
	LowestRating              float64 `json:"lowestRating"`
	TotalDirectors            int     `json:"totalDirectors"`
	MostFeaturedDirector      string  `json:"mostFeaturedDirector"`
	MostFeaturedDirectorCount int     `json:"mostFeaturedDirectorCount"`
}

// ComputeStats is a pure aggregation over the given movies. Genre and
// director grouping preserve first-encountered order, so ties go to the
// group seen first, not the alphabetically smallest. An empty input yields
// the zero value: all counts 0, all names empty.
func ComputeStats(movies []entity.Movie) MovieStats {
	if len(movies) == 0 {
		return MovieStats{}
	}

	genres := newGroupCounter()
	directors := newGroupCounter()
	sum := 0.0
	highest := movies[0].Rating
	lowest := movies[0].Rating
	for _, m := range movies {
		genres.add(m.Genre)
		directors.add(m.Director)
		sum += m.Rating
		if m.Rating > highest {
			highest = m.Rating
		}
		if m.Rating < lowest {
			lowest = m.Rating
		}
	}

	topGenre, topGenreCount := genres.top()
	topDirector, topDirectorCount := directors.top()

	return MovieStats{
		TotalMovies:               len(movies),
		TotalGenres:               genres.size(),
		TopGenre:                  topGenre,
		TopGenreCount:             topGenreCount,
		AverageRating:             roundRating(sum / float64(len(movies))),
		HighestRating:             highest,
		LowestRating:              lowest,
		TotalDirectors:            directors.size(),
		MostFeaturedDirector:      topDirector,
		MostFeaturedDirectorCount: topDirectorCount,
	}
}

// roundRating rounds to two decimals, halves away from zero. Ratings are
// non-negative, so 8.495 becomes 8.5, never 8.49.
func roundRating(r float64) float64 {
	return math.Round(r*100) / 100
}

// groupCounter counts keys while remembering insertion order, which carries
// the tie-break rule for top().
type groupCounter struct {
	counts map[string]int
	order  []string
}

func newGroupCounter() *groupCounter {
	return &groupCounter{counts: make(map[string]int)}
}

func (g *groupCounter) add(key string) {
	if _, seen := g.counts[key]; !seen {
		g.order = append(g.order, key)
	}
	g.counts[key]++
}

func (g *groupCounter) size() int { return len(g.order) }

// top returns the key with the highest count; on a tie the key encountered
// first wins.
func (g *groupCounter) top() (string, int) {
	topKey, topCount := "", 0
	for _, key := range g.order {
		if g.counts[key] > topCount {
			topKey, topCount = key, g.counts[key]
		}
	}
	return topKey, topCount
}
