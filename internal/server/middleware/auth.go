package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/rolegate/internal/auth/authctx"
	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/token"
)

// TokenHeader is the request header protected routes read the session token
// from. The non-standard name (instead of Authorization: Bearer) is kept for
// compatibility with existing clients of the API.
const TokenHeader = "auth"

// TokenVerifier validates a session token string.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Restricted returns the authentication stage of the request gate.
//
// A missing token fails 401 "Token required" without ever calling Verify.
// A present token that fails verification for any reason fails 401
// "Token Invalid". Only on success are the decoded claims attached to the
// request context and the chain continued; every failure aborts the chain so
// downstream handlers never run.
func Restricted(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			abort(c, apperrors.Unauthorized("Token required"))
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			abort(c, apperrors.Unauthorized("Token Invalid"))
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
		c.Next()
	}
}

// Only returns the authorization stage of the request gate. It must be
// composed after Restricted: it reads the claims Restricted attached and
// never re-verifies the token. A role mismatch fails 403.
func Only(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authctx.Get(c.Request.Context())
		if !ok {
			// Restricted did not run; refuse rather than guess.
			abort(c, apperrors.Unauthorized("Token required"))
			return
		}
		if claims.RoleName != roleName {
			abort(c, apperrors.Forbidden("This is not for you"))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
