package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimitMiddleware limita a API pública por IP em janela fixa de um
// minuto, compartilhada entre instâncias via Redis. Falha do Redis não
// derruba a API (fail open).
func RateLimitMiddleware(rdb *redis.Client, limit int) gin.HandlerFunc {
	if limit <= 0 {
		limit = 60
	}

	window := time.Minute

	return func(c *gin.Context) {
		key := "rl:public:" + c.ClientIP()

		res, err := fixedWindowScript.Run(
			c.Request.Context(),
			rdb,
			[]string{key},
			window.Milliseconds(),
		).Result()

		if err != nil {
			log.Println("rate limiter error:", err)
			c.Next()
			return
		}

		count, err := toInt64(res)
		if err != nil {
			log.Println("rate limiter error:", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limit_exceeded",
			})
			return
		}

		c.Next()
	}
}

func toInt64(res any) (int64, error) {
	switch v := res.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected script result type %T", res)
	}
}
