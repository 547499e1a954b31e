package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aryaseta/movie-vault/pkg/helpers"
	"github.com/aryaseta/movie-vault/pkg/response"
)

// CtxUserIDKey is where the authenticated caller's id lives in the Gin
// context; handlers read it with c.GetString.
const CtxUserIDKey = "userID"

// JWTAuth validates the Authorization bearer token and injects the caller's
// user id into the context. It fails closed: a missing header, a malformed
// header or any parse failure aborts with 401 and never a default identity.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			resp := response.NewError(c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			resp := response.NewError(c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
