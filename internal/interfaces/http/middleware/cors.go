package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists what the browser console may send and read
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig allows no origin. The download headers are exposed so the
// console can read archive keys and label counts once an origin is set.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders: []string{
			RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining",
			"X-Archive-Key", "X-Label-Count", "X-Page-Count", "Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func CORS() gin.HandlerFunc {
	return CORSWithConfig(DefaultCORSConfig())
}

// corsPolicy is a CORSConfig with its header values joined once
type corsPolicy struct {
	origins     []string
	anyOrigin   bool
	credentials bool
	static      map[string]string
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	p := corsPolicy{
		origins:     cfg.AllowOrigins,
		anyOrigin:   slices.Contains(cfg.AllowOrigins, "*"),
		credentials: cfg.AllowCredentials,
		static: map[string]string{
			"Access-Control-Allow-Headers": strings.Join(cfg.AllowHeaders, ", "),
			"Access-Control-Allow-Methods": strings.Join(cfg.AllowMethods, ", "),
		},
	}
	if len(cfg.ExposeHeaders) > 0 {
		p.static["Access-Control-Expose-Headers"] = strings.Join(cfg.ExposeHeaders, ", ")
	}
	if cfg.MaxAge > 0 {
		p.static["Access-Control-Max-Age"] = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}
	return p
}

// allow returns the Access-Control-Allow-Origin value for origin, or "".
func (p corsPolicy) allow(origin string) string {
	if p.anyOrigin {
		return "*"
	}
	if origin != "" && slices.Contains(p.origins, origin) {
		return origin
	}
	return ""
}

func (p corsPolicy) write(h http.Header, allowed string) {
	h.Set("Access-Control-Allow-Origin", allowed)
	// browsers reject credentials with a wildcard origin
	if p.credentials && allowed != "*" {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	for k, v := range p.static {
		h.Set(k, v)
	}
}

// CORSWithConfig answers preflights with 204 whether or not the origin is
// allowed; only allowed origins get the CORS headers.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	policy := newCORSPolicy(cfg)

	return func(c *gin.Context) {
		if allowed := policy.allow(c.GetHeader("Origin")); allowed != "" {
			policy.write(c.Writer.Header(), allowed)
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
