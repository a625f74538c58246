package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/theaitel/loginaitel-sub003/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token and checks it against the
// Redis session cache. On success it sets actorID, role and clientID on the
// request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		claims, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || claims.Subject == "" || claims.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		// A token is live only while its hash sits in the session cache;
		// logout removes it.
		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()
		if _, err := authCache.Get(context.Background(), cacheKey).Result(); err != nil {
			if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired or revoked",
				"code":  0,
			})
			return
		}
		_ = authCache.Expire(context.Background(), cacheKey, utils.AuthCacheTTL).Err()

		c.Set("actorID", claims.Subject)
		c.Set("role", claims.Role)
		c.Set("clientID", claims.ClientID)
		c.Next()
	}
}
