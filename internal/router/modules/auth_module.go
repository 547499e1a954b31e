package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/aryaseta/movie-vault/internal/interface/http"
)

// AuthModule registers the public identity endpoints:
// POST /api/auth/register, POST /api/auth/login.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
}
