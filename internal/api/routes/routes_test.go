package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"field-sales-ops-api-server/config"
	"field-sales-ops-api-server/internal/auth"
	"field-sales-ops-api-server/internal/models"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestRouter builds the full router against a lazily-connected Mongo
// client. The gating tests below are rejected by middleware before any
// query runs, so no database is needed.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Init("route-gate-test-secret", 3600)

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	require.NoError(t, err)
	db := client.Database("route_gate_test")

	files, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	return SetupRouter(config.Config{}, db, files, socket.NewHub())
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(primitive.NewObjectID().Hex(), "gate@test.local", role)
	require.NoError(t, err)
	return token
}

func TestHardDeleteEndpointsAreAdminOnly(t *testing.T) {
	router := newTestRouter(t)
	id := primitive.NewObjectID().Hex()

	paths := []string{
		"/api/v1/orders/" + id,
		"/api/v1/damage-claims/" + id,
		"/api/v1/sales-inquiries/" + id,
	}

	for _, role := range []string{models.RoleMarketingStaff, models.RoleMidLevelManager} {
		for _, path := range paths {
			req := httptest.NewRequest(http.MethodDelete, path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code, "%s DELETE %s", role, path)
		}
	}
}

func TestDistributorMutationsAreAdminOnly(t *testing.T) {
	router := newTestRouter(t)
	id := primitive.NewObjectID().Hex()

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/distributors/"},
		{http.MethodPut, "/api/v1/distributors/" + id},
		{http.MethodDelete, "/api/v1/distributors/" + id},
	}

	for _, role := range []string{models.RoleMarketingStaff, models.RoleMidLevelManager} {
		for _, r := range requests {
			req := httptest.NewRequest(r.method, r.path, nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, role))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code, "%s %s %s", role, r.method, r.path)
		}
	}
}

func TestAdminGroupRejectsManagers(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/staff-activities/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleMidLevelManager))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
