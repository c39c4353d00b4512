package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// AllowedOrigins merges the local development origins with the configured ones.
func AllowedOrigins(extra []string) []string {
	seen := make(map[string]bool, len(devOrigins)+len(extra))
	out := make([]string, 0, len(devOrigins)+len(extra))
	for _, o := range append(append([]string{}, devOrigins...), extra...) {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

// CORS must run before the auth middleware so preflights never hit it.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     AllowedOrigins(origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Authorization", "Accept", "Origin", "X-Requested-With", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	})
}

// OriginChecker reports whether a websocket Origin is one CORS would accept.
// Requests without an Origin header (non-browser clients) are allowed.
func OriginChecker(origins []string) func(origin string) bool {
	allowed := make(map[string]bool)
	for _, o := range AllowedOrigins(origins) {
		allowed[o] = true
	}
	return func(origin string) bool {
		return origin == "" || allowed[origin]
	}
}
