package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
)

// RateLimit protege as rotas públicas de agendamento. A chave combina o
// token do link com o IP de origem para não punir clientes diferentes
// atrás do mesmo link.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("token") + ":" + c.ClientIP()

		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too_many_requests",
			})
			return
		}

		c.Next()
	}
}
