package server

import (
	"errors"
	"net/http"
	"strings"

	"taskmanager/internal/auth"

	domain "taskmanager/internal/domain/errors"

	"github.com/gin-gonic/gin"
)

// Identity is the verified caller of a protected request. The gate passes
// it to handlers as an explicit argument; nothing is stashed on the
// request context.
type Identity struct {
	UserID string
	Email  string
}

// authGate wraps a protected handler. It extracts the bearer token,
// verifies it, re-resolves the user against the credential store (a token
// for a deleted user must fail even before expiry), and invokes the
// handler with the verified identity.
func (api *TaskAPI) authGate(handler func(*gin.Context, Identity)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrNoToken.Error()})
			return
		}

		ident, err := auth.VerifyToken(token, []byte(api.cfg.JWTSecret))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			return
		}

		user, err := api.users.GetUserByID(ctx.Request.Context(), ident.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUserNotFound.Error()})
				return
			}
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			return
		}

		handler(ctx, Identity{UserID: user.ID, Email: user.Email})
	}
}
