// Package httpapi exposes the auth flows over HTTP.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/rolegate/internal/auth"
	"github.com/skillsenselab/rolegate/internal/auth/authctx"
	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/server"
	"github.com/skillsenselab/rolegate/internal/token"
	"github.com/skillsenselab/rolegate/internal/validation"
)

// TokenCookie is the cookie the login response sets for browser clients.
const TokenCookie = "token"

// Handler holds the HTTP handlers for the auth API.
type Handler struct {
	svc   *auth.Service
	codec *token.Codec
}

// NewHandler creates the API handler.
func NewHandler(svc *auth.Service, codec *token.Codec) *Handler {
	return &Handler{svc: svc, codec: codec}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	RoleName string `json:"role_name"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("invalid JSON body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	created, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.RoleName)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, created)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("invalid JSON body"))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	// Browser clients get the token as an HttpOnly cookie alongside the body.
	c.SetCookie(TokenCookie, res.Token, int(h.codec.TTL().Seconds()), "/", "", false, true)
	server.RespondOK(c, res)
}

func (h *Handler) listUsers(c *gin.Context) {
	identities, err := h.svc.Users(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, identities)
}

func (h *Handler) me(c *gin.Context) {
	claims, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.Unauthorized("Token required"))
		return
	}
	server.RespondOK(c, gin.H{
		"user_id":   claims.Subject,
		"username":  claims.Username,
		"role_name": claims.RoleName,
	})
}
