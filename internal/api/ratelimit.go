package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/pkg/response"
)

// userLimiters keeps one token bucket per authenticated user.
type userLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	burst    int
}

func newUserLimiters(r float64, burst int) *userLimiters {
	return &userLimiters{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(r),
		burst:    burst,
	}
}

func (u *userLimiters) get(userID string) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()

	l, ok := u.limiters[userID]
	if !ok {
		l = rate.NewLimiter(u.r, u.burst)
		u.limiters[userID] = l
	}
	return l
}

// RateLimit bounds mutating booking calls per user. The UI already debounces
// double-taps; this is the backstop against retry loops gone wrong.
func RateLimit(r float64, burst int) gin.HandlerFunc {
	limiters := newUserLimiters(r, burst)

	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		if !limiters.get(userID).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Result{
				Success: false,
				Error:   "too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
