package middleware

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/ai-ready/backend/logging"
)

// Analytics records each visitor against the analytics state and flushes it
// to disk every 100 requests. The flush runs off the request path.
func Analytics(a *logging.Analytics) gin.HandlerFunc {
	var requests atomic.Int64

	return func(c *gin.Context) {
		a.TrackVisitor(c.ClientIP())

		c.Next()

		if requests.Add(1)%100 == 0 {
			go a.Save()
		}
	}
}
