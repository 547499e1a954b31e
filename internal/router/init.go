package router

import (
	"github.com/aryaseta/movie-vault/internal/application"
	"github.com/aryaseta/movie-vault/internal/container"
	"github.com/aryaseta/movie-vault/internal/domain/entity"
	pginfra "github.com/aryaseta/movie-vault/internal/infrastructure/postgres"
	handlers "github.com/aryaseta/movie-vault/internal/interface/http"
	"github.com/aryaseta/movie-vault/internal/router/modules"
	"github.com/aryaseta/movie-vault/pkg/helpers"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	movieRepo := pginfra.NewMovieRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetEmailPub(),
		container.GetLogger(),
		container.GetConfig().AppName,
	)
	movieSvc := application.NewMovieService(
		movieRepo,
		helpers.NewRedisCache(container.GetRedis()),
		container.GetMovieEventsPub(),
		container.GetLogger(),
		entity.SystemClock(),
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetLogger())))
	r.Add(modules.NewMovieModule(handlers.NewMovieHandler(movieSvc, container.GetLogger()), container.GetJWT()))
}
