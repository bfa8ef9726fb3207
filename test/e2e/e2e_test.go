// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	biodataapi "biodata-service/internal/api/biodata"
	"biodata-service/internal/common/config"
	"biodata-service/internal/common/database"
	apperrors "biodata-service/internal/common/errors"
	commonhttp "biodata-service/internal/common/http"
	"biodata-service/internal/common/logger"
	repo "biodata-service/internal/repository/biodata"
)

// mongoURIEnv points the suite at a disposable MongoDB. Unset skips it.
const mongoURIEnv = "BIODATA_E2E_MONGO_URI"

func startServer(t *testing.T) *commonhttp.Client {
	t.Helper()

	uri := os.Getenv(mongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping e2e tests", mongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoCfg := config.MongoConfig{
		URI:            uri,
		Database:       "student_e2e",
		Collection:     fmt.Sprintf("bioData_%d", time.Now().UnixNano()),
		ConnectTimeout: 5000,
		MaxPoolSize:    10,
	}
	mc, err := database.NewMongo(ctx, mongoCfg)
	require.NoError(t, err, "❌ MongoDB client creation failed")
	require.NoError(t, mc.Ping(ctx), "❌ MongoDB ping failed")
	t.Log("✅ MongoDB connected")

	coll := mc.Collection(mongoCfg.Collection)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = coll.Drop(ctx)
		_ = mc.Close(ctx)
	})

	log := logger.NewTestLogger(t)
	handler := biodataapi.NewHandler(&biodataapi.Config{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		repo.NewMongoRepository(coll), log)

	mux := http.NewServeMux()
	handler.Register(mux)
	commonhttp.RegisterOperational(mux, mc.Ping, apperrors.NewErrorHandler(log))

	srv := httptest.NewServer(commonhttp.Chain(mux,
		commonhttp.RequestID(),
		commonhttp.CORS(),
		commonhttp.AccessLog(log),
		commonhttp.Recover(apperrors.NewErrorHandler(log)),
	))
	t.Cleanup(srv.Close)

	return commonhttp.NewClient(srv.URL, 10*time.Second)
}

func TestFullE2E(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	t.Log("🚀 Starting biodata E2E flow against MongoDB...")

	var created map[string]interface{}
	status, err := client.DoJSON(ctx, http.MethodPost, "/api/biodata",
		map[string]interface{}{"name": "Asha", "application_number": "APP-001", "age": 21}, &created)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "BioData added", created["message"])
	id := created["id"].(string)
	t.Logf("✅ Created record %s", id)

	var record map[string]interface{}
	status, err = client.DoJSON(ctx, http.MethodGet, "/api/biodata/"+id, nil, &record)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{
		"_id": id, "name": "Asha", "application_number": "APP-001", "age": float64(21),
	}, record)

	var check map[string]interface{}
	status, err = client.DoJSON(ctx, http.MethodPost, "/api/student_check",
		map[string]interface{}{"application_number": "APP-001"}, &check)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Student record found", check["message"])

	status, err = client.DoJSON(ctx, http.MethodPost, "/api/student_check",
		map[string]interface{}{"application_number": "app-001"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	status, err = client.DoJSON(ctx, http.MethodPut, "/api/biodata/"+id, map[string]interface{}{"age": 22}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	record = nil
	status, err = client.DoJSON(ctx, http.MethodGet, "/api/biodata/"+id, nil, &record)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Asha", record["name"])
	assert.Equal(t, float64(22), record["age"])
	t.Log("✅ Partial update merged")

	var list []map[string]interface{}
	status, err = client.DoJSON(ctx, http.MethodGet, "/api/biodata", nil, &list)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)

	status, err = client.DoJSON(ctx, http.MethodDelete, "/api/biodata/"+id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	status, err = client.DoJSON(ctx, http.MethodDelete, "/api/biodata/"+id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	status, err = client.DoJSON(ctx, http.MethodGet, "/api/biodata/"+id, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	t.Log("✅ ALL TESTS PASSED: biodata E2E flow successful!")
}

func TestIdentifierHandlingE2E(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	status, err := client.DoJSON(ctx, http.MethodGet, "/api/biodata/not-an-id", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)

	status, err = client.DoJSON(ctx, http.MethodPut, "/api/biodata/not-an-id", map[string]interface{}{"a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, err = client.DoJSON(ctx, http.MethodDelete, "/api/biodata/not-an-id", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, err = client.DoJSON(ctx, http.MethodGet, "/ready", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}
