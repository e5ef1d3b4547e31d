package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/logger"
)

// RespondWithError translates err into the client-facing {message} body.
// Business failures carry their own status and message; anything else is a
// generic 500 with the cause logged server-side, never leaked to the caller.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("request failed", logger.Fields(
				"path", c.Request.URL.Path,
				"error", appErr.Error(),
			))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}

	logger.Error("unhandled error", logger.Fields(
		"path", c.Request.URL.Path,
		"error", err.Error(),
	))
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response with the payload as-is.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 response with the payload as-is.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
