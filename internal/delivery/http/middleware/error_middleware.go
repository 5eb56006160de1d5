package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Internal detail goes to the log only, never to the client.
		logger.Log.Error("unhandled request error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
