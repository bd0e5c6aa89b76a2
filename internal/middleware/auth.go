package middleware

import (
	"errors"
	"log"
	"net/http"

	"devconnector-be/internal/jwt"

	"github.com/gin-gonic/gin"
)

// TokenHeader is the fixed header slot the identity token travels in
const TokenHeader = "x-auth-token"

// UserIDKey is the gin context key the resolved subject id is stored under
const UserIDKey = "user_id"

// AuthRequired resolves the request identity from the token header or
// rejects the request. A rejection aborts the chain; downstream handlers
// never run.
func AuthRequired(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "No token, authorization denied",
			})
			return
		}

		userID, err := jwtService.VerifyToken(token)
		if err != nil {
			// Expired and tampered tokens get the same answer; the
			// distinction only matters for the log line.
			if errors.Is(err, jwt.ErrExpiredToken) {
				log.Printf("auth: rejected expired token")
			} else {
				log.Printf("auth: rejected invalid token")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "Token is not valid",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
