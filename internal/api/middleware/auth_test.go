package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"field-sales-ops-api-server/internal/auth"
	"field-sales-ops-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(Authenticate())
	if len(roles) > 0 {
		group.Use(Authorize(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(CtxUserID),
			"role":   c.GetString(CtxUserRole),
		})
	})
	return router
}

func TestAuthenticateMissingToken(t *testing.T) {
	auth.Init("test-secret", 3600)
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	auth.Init("test-secret", 3600)
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBearerToken(t *testing.T) {
	auth.Init("test-secret", 3600)
	token, err := auth.GenerateJWT("64b5f0c2a1d2e3f4a5b6c7d8", "staff@example.com", models.RoleMarketingStaff)
	require.NoError(t, err)

	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64b5f0c2a1d2e3f4a5b6c7d8")
}

func TestAuthenticateCookieFallback(t *testing.T) {
	auth.Init("test-secret", 3600)
	token, err := auth.GenerateJWT("64b5f0c2a1d2e3f4a5b6c7d8", "staff@example.com", models.RoleMarketingStaff)
	require.NoError(t, err)

	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateExpiredSecretMismatch(t *testing.T) {
	auth.Init("other-secret", 3600)
	token, err := auth.GenerateJWT("id", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)

	auth.Init("test-secret", 3600)
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeRoleGate(t *testing.T) {
	auth.Init("test-secret", 3600)
	router := newTestRouter(models.RoleAdmin, models.RoleSubAdmin)

	t.Run("allowed role passes", func(t *testing.T) {
		token, err := auth.GenerateJWT("id1", "admin@example.com", models.RoleAdmin)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role outside allow-list is forbidden", func(t *testing.T) {
		token, err := auth.GenerateJWT("id2", "staff@example.com", models.RoleMarketingStaff)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
