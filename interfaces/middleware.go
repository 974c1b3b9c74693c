package interfaces

import (
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultOriginPattern admits local dev servers and the hosted frontends.
var DefaultOriginPattern = regexp.MustCompile(`^(?:http://localhost:\d+|http://127\.0\.0\.1:\d+|https://.*\.vercel\.app|https://.*\.onrender\.com)$`)

// CORS allows origins listed in allowed or matching pattern.
func CORS(allowed []string, pattern *regexp.Regexp) gin.HandlerFunc {
	exact := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		exact[o] = struct{}{}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := exact[origin]; ok {
				return true
			}
			return pattern != nil && pattern.MatchString(origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// RequestLogger logs one line per request. Health checks on "/" are skipped.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/"},
	})
}

// NewRouter builds the gin engine with logging, recovery and CORS installed.
func NewRouter(logger *zap.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), ginzap.RecoveryWithZap(logger, true), CORS(allowedOrigins, DefaultOriginPattern))
	return router
}
