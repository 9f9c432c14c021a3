package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware renders errors attached to the context and
// recovers panics. AppErrors keep their kind so callers can tell
// "not allowed" from "not found" from "already done".
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", stack).
					Msg("Panic recovered")

				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal Server Error",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if appErr, ok := err.(*apperr.AppError); ok {
				c.JSON(appErr.Code, gin.H{
					"error": appErr.Message,
					"kind":  appErr.Kind,
				})
				return
			}

			logger.Error().Err(err).Msg("Unhandled request error")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		}
	}
}
