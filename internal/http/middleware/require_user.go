package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser only lets requests through when the session has a signed-in user.
// It must run after RequireSession.
//
//	r.GET("/journeys/saved/export", RequireUser(), handler)
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := GetState(c)
		if st == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "session state not found on context",
				"code":       "invalid_session",
				"request_id": GetRequestID(c),
			})
			return
		}
		if !st.Auth.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "user not authenticated",
				"code":       "not_authenticated",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
