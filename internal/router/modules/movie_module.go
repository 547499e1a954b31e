package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/aryaseta/movie-vault/internal/interface/http"
	"github.com/aryaseta/movie-vault/internal/interface/middleware"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

// MovieModule registers the owner-scoped movie endpoints. Everything here
// sits behind the bearer-token middleware; static paths (search, stats) come
// before the :id routes.
type MovieModule struct {
	Handler *handlers.MovieHandler
	JWT     *helpers.JWTManager
}

func NewMovieModule(h *handlers.MovieHandler, jwt *helpers.JWTManager) *MovieModule {
	return &MovieModule{Handler: h, JWT: jwt}
}

func (m *MovieModule) Register(rg *gin.RouterGroup) {
	movies := rg.Group("/movies")
	movies.Use(middleware.JWTAuth(m.JWT))
	{
		movies.GET("", m.Handler.List)
		movies.GET("/search", m.Handler.Search)
		movies.GET("/stats", m.Handler.Stats)
		movies.GET("/:id", m.Handler.GetByID)
		movies.POST("", m.Handler.Create)
		movies.PUT("/:id", m.Handler.Update)
		movies.DELETE("/:id", m.Handler.Delete)
	}
}
