package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/rolegate/internal/auth"
	"github.com/skillsenselab/rolegate/internal/server/middleware"
)

// RegisterRoutes mounts the auth API on the engine.
//
// Protected routes compose the gate in its required order: Restricted
// authenticates and attaches claims, Only authorizes against them.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	api := r.Group("/api", middleware.Restricted(h.codec))
	api.GET("/users", h.listUsers)
	api.GET("/users/me", h.me)

	admin := api.Group("/admin", middleware.Only(auth.ReservedRole))
	admin.GET("/users", h.listUsers)
}
