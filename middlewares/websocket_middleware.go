package middlewares

import (
	"bookxchange/utils"

	"github.com/gin-gonic/gin"
)

// WebSocketAuthMiddleware mengambil token dari query string karena browser
// tidak bisa mengirim header Authorization saat upgrade websocket.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		if utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
