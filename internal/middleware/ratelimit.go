package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quillpress/quillpress-backend/internal/ratelimit"
	"github.com/quillpress/quillpress-backend/internal/response"
)

// LoginRateLimit throttles login attempts per client IP using a fixed-window
// counter. It runs before credentials are even read, so a blocked client
// never costs a database lookup or a bcrypt comparison.
//
// A rejection is a recoverable, user-visible condition: it surfaces as a 400
// validation-class error whose message carries the retry-after hint.
func LoginRateLimit(limiter *ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := "login:" + c.ClientIP()

		if _, err := limiter.Attempt(identifier, limit, window); err != nil {
			var lee *ratelimit.LimitExceededError
			if errors.As(err, &lee) {
				response.AbortFailMsg(c, http.StatusBadRequest, response.ErrValidation, lee.Error())
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Next()
	}
}
