package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSwaggerProtection(t *testing.T) {
	authChain := []gin.HandlerFunc{Authenticate(fakeAuthenticator{}, zap.NewNop()), RequireAdmin()}

	tests := []struct {
		name       string
		cfg        config.SwaggerConfig
		remoteAddr string
		token      string
		status     int
	}{
		{"disabled", config.SwaggerConfig{}, "", "", http.StatusNotFound},
		{"enabled without restrictions", config.SwaggerConfig{Enabled: true}, "", "", http.StatusOK},
		{"allowed IP", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.5"}}, "10.0.0.5:1234", "", http.StatusOK},
		{"denied IP", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.5"}}, "10.0.0.6:1234", "", http.StatusForbidden},
		{"CIDR match", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, "192.168.4.2:80", "", http.StatusOK},
		{"invalid entries ignored", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"bogus", "10.0.0.0/8"}}, "10.1.1.1:80", "", http.StatusOK},
		{"auth required without token", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "", "", http.StatusUnauthorized},
		{"auth required staff", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "", "staff-token", http.StatusForbidden},
		{"auth required admin", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "", "admin-token", http.StatusOK},
		{"IP checked before auth", config.SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"10.0.0.5"}}, "10.0.0.9:1", "admin-token", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/swagger/*any", SwaggerProtection(tt.cfg, authChain...), func(c *gin.Context) {
				c.String(http.StatusOK, "docs")
			})

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestIPAllowed(t *testing.T) {
	assert.False(t, ipAllowed("not-an-ip", nil))
	assert.False(t, ipAllowed("10.0.0.1", nil))
}
