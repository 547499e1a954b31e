package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aryaseta/movie-vault/internal/application"
	"github.com/aryaseta/movie-vault/internal/domain/entity"
	"github.com/aryaseta/movie-vault/internal/interface/middleware"
	"github.com/aryaseta/movie-vault/pkg/response"
	"github.com/aryaseta/movie-vault/pkg/validation"
)

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

// movieRequest keeps binding to presence checks only; the entity layer is
// the single authority for field bounds, so its messages reach the client
// unduplicated.
type movieRequest struct {
	Title       string  `json:"title" binding:"required"`
	Director    string  `json:"director" binding:"required"`
	Genre       string  `json:"genre" binding:"required"`
	ReleaseYear int     `json:"releaseYear" binding:"required"`
	Rating      float64 `json:"rating"`
}

type movieResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Genre       string  `json:"genre"`
	ReleaseYear int     `json:"releaseYear"`
	Rating      float64 `json:"rating"`
}

func toMovieResponse(m *entity.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
	}
}

func toMovieResponses(movies []entity.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(movies))
	for i := range movies {
		out = append(out, toMovieResponse(&movies[i]))
	}
	return out
}

func (m movieRequest) input() application.MovieInput {
	return application.MovieInput{
		Title:       m.Title,
		Director:    m.Director,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
	}
}

// Create POST /api/movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	movie, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.input())
	if err != nil {
		h.writeError(c, err, "create movie")
		return
	}
	response.Success(c, http.StatusCreated, toMovieResponse(movie), "movie created", nil)
}

// List GET /api/movies
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.writeError(c, err, "list movies")
		return
	}
	response.Success(c, http.StatusOK, toMovieResponses(movies), "movies", map[string]any{"count": len(movies)})
}

// Search GET /api/movies/search?keyword=
func (h *MovieHandler) Search(c *gin.Context) {
	movies, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Query("keyword"))
	if err != nil {
		h.writeError(c, err, "search movies")
		return
	}
	response.Success(c, http.StatusOK, toMovieResponses(movies), "search results", map[string]any{"count": len(movies)})
}

// Stats GET /api/movies/stats
func (h *MovieHandler) Stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.writeError(c, err, "movie stats")
		return
	}
	response.Success(c, http.StatusOK, stats, "movie stats", nil)
}

// GetByID GET /api/movies/:id
// A movie owned by someone else answers 404 here, same as a missing one, so
// reads cannot probe which ids exist.
func (h *MovieHandler) GetByID(c *gin.Context) {
	movie, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		if errors.Is(err, application.ErrNotOwner) {
			response.Error(c, http.StatusNotFound, "movie not found", nil)
			return
		}
		h.writeError(c, err, "get movie")
		return
	}
	response.Success(c, http.StatusOK, toMovieResponse(movie), "movie", nil)
}

// Update PUT /api/movies/:id
func (h *MovieHandler) Update(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	movie, err := h.Svc.Update(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey), req.input())
	if err != nil {
		h.writeError(c, err, "update movie")
		return
	}
	response.Success(c, http.StatusOK, toMovieResponse(movie), "movie updated", nil)
}

// Delete DELETE /api/movies/:id
func (h *MovieHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		h.writeError(c, err, "delete movie")
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps the application taxonomy to status codes. Unknown errors
// stay generic 500s; internal causes are logged, never echoed.
func (h *MovieHandler) writeError(c *gin.Context, err error, op string) {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{verr.Field: verr.Message})
	case errors.Is(err, application.ErrBlankKeyword):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrMovieNotFound):
		response.Error(c, http.StatusNotFound, "movie not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "you do not have permission to access this movie", nil)
	default:
		h.Logger.WithError(err).Error(op + " failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
