package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veridata-labs/catalog-engine/pkg/auth"
	"github.com/veridata-labs/catalog-engine/pkg/config"
	"github.com/veridata-labs/catalog-engine/pkg/docstore"
	"github.com/veridata-labs/catalog-engine/pkg/repositories"
	"github.com/veridata-labs/catalog-engine/pkg/services"
	"github.com/veridata-labs/catalog-engine/pkg/testhelpers"
)

const testSyncSecret = "sync-s3cret"

// newTestApp wires the full handler surface against an in-memory store,
// signature verification off.
func newTestApp(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := zap.NewNop()
	store := docstore.NewMemStore()

	furnisherRepo := repositories.NewFurnisherRepository()
	dataTypeRepo := repositories.NewDataTypeRepository()
	attributeRepo := repositories.NewAttributeRepository()

	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	seedDoc := `furnishers:
  - id: seeded-furnisher
    name: Seeded Furnisher
    dataTypes:
      - id: seeded-income
        name: Income
        attributes:
          - name: gross_income
`
	require.NoError(t, os.WriteFile(seedPath, []byte(seedDoc), 0o644))

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}

	catalog := services.NewCatalogService(store, furnisherRepo, dataTypeRepo, attributeRepo,
		newID, auth.Identity, logger)
	search := services.NewSearchService(store, furnisherRepo, dataTypeRepo, attributeRepo, logger)
	registry := services.NewRegistryService(store,
		repositories.NewConfigRepository(), repositories.NewCategoryRepository(), dataTypeRepo, logger)
	seed := services.NewSeedService(store, furnisherRepo, dataTypeRepo, attributeRepo,
		seedPath, testSyncSecret, logger)

	authMiddleware := auth.NewMiddleware("", false, logger)

	mux := http.NewServeMux()
	NewFurnisherHandler(catalog, logger).RegisterRoutes(mux, authMiddleware)
	NewDataTypeHandler(catalog, logger).RegisterRoutes(mux, authMiddleware)
	NewAttributeHandler(catalog, logger).RegisterRoutes(mux, authMiddleware)
	NewSearchHandler(search, logger).RegisterRoutes(mux)
	NewRegistryHandler(registry, logger).RegisterRoutes(mux, authMiddleware)
	NewCatalogAdminHandler(catalog, seed, logger).RegisterRoutes(mux)
	NewHealthHandler(&config.Config{Env: "test", Version: "test"}, logger).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if authorized {
		req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer("user-1", "tester@example.com"))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (ApiResponse, map[string]any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	data := map[string]any{}
	if len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
	}
	return ApiResponse{
		Success: envelope.Success,
		Error:   envelope.Error,
		Message: envelope.Message,
	}, data
}

func TestFurnisherEndpoints(t *testing.T) {
	mux := newTestApp(t)

	t.Run("list starts empty", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/furnishers", "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		env, data := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.EqualValues(t, 0, data["total"])
	})

	t.Run("create requires auth", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"name":"Acme"}`, false)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "unauthorized")
	})

	t.Run("create stamps identity from token", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"id":"F1","name":"Acme"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		env, data := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "F1", data["id"])
		assert.Equal(t, "tester@example.com", data["createdBy"])
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"id":"F1","name":"Clone"}`, true)
		require.Equal(t, http.StatusConflict, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "duplicate_id", env.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"name":`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "invalid_request", env.Error)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"name":""}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "validation_error", env.Error)
	})

	t.Run("patch updates only given fields", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPatch, "/api/furnishers/F1", `{"description":"data furnisher"}`, true)
		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.Equal(t, "Acme", data["name"])
		assert.Equal(t, "data furnisher", data["description"])
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/furnishers/nope", "", false)
		require.Equal(t, http.StatusNotFound, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "not_found", env.Error)
	})

	t.Run("delete then gone", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, "/api/furnishers/F1", "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, mux, http.MethodGet, "/api/furnishers/F1", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDataTypeAndAttributeEndpoints(t *testing.T) {
	mux := newTestApp(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"id":"F1","name":"Acme"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("data type needs existing furnisher", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/datatypes", `{"furnisherId":"nope","name":"Income"}`, true)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	rec = doRequest(t, mux, http.MethodPost, "/api/datatypes", `{"id":"DT1","furnisherId":"F1","name":"Income"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("list filters by furnisher", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/datatypes?furnisherId=F1", "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.EqualValues(t, 1, data["total"])

		rec = doRequest(t, mux, http.MethodGet, "/api/datatypes?furnisherId=other", "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		_, data = decodeEnvelope(t, rec)
		assert.EqualValues(t, 0, data["total"])
	})

	t.Run("bulk create reports skips", func(t *testing.T) {
		body := `{"items":[{"name":"a","sampleValue":42},{"displayName":"no name"},{"name":"b"}]}`
		rec := doRequest(t, mux, http.MethodPost, "/api/datatypes/DT1/attributes/bulk", body, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.EqualValues(t, 2, data["created"])
		skipped, ok := data["skipped"].([]any)
		require.True(t, ok)
		assert.Len(t, skipped, 1)
	})

	t.Run("attribute region clears on empty string", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/attributes", `{"id":"A1","dataTypeId":"DT1","name":"net_income","region":"us"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, mux, http.MethodPatch, "/api/attributes/A1", `{"region":""}`, true)
		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.Nil(t, data["region"], "cleared region serializes as null")
	})

	t.Run("delete data type cascades", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodDelete, "/api/datatypes/DT1", "", true)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, mux, http.MethodGet, "/api/attributes/A1", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearchEndpoint(t *testing.T) {
	mux := newTestApp(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"id":"F1","name":"Meridian Payroll"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/search?q=meridian", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)
	furnishers, ok := data["furnishers"].([]any)
	require.True(t, ok)
	assert.Len(t, furnishers, 1)

	// Sub-minimum queries return empty arrays, not null.
	rec = doRequest(t, mux, http.MethodGet, "/api/search?q=m", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"furnishers":[]`)
}

func TestRegistryEndpoints(t *testing.T) {
	mux := newTestApp(t)

	rec := doRequest(t, mux, http.MethodPost, "/api/configs", `{"name":"Income Verification"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, "income-verification", data["id"])

	t.Run("duplicate name is 400", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/configs", `{"name":"income verification"}`, true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "duplicate_name", env.Error)
	})

	t.Run("delete protection while referenced", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/furnishers", `{"id":"F1","name":"Acme"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = doRequest(t, mux, http.MethodPost, "/api/datatypes",
			`{"id":"DT1","furnisherId":"F1","name":"Income","configId":"income-verification"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, mux, http.MethodDelete, "/api/configs/income-verification", "", true)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env, _ := decodeEnvelope(t, rec)
		assert.Equal(t, "in_use", env.Error)
	})

	t.Run("categories get sequential order", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/api/categories", `{"name":"Financial"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.EqualValues(t, 1, data["order"])

		rec = doRequest(t, mux, http.MethodPost, "/api/categories", `{"name":"Utilities"}`, true)
		require.Equal(t, http.StatusCreated, rec.Code)
		_, data = decodeEnvelope(t, rec)
		assert.EqualValues(t, 2, data["order"])
	})
}

func TestCatalogAdminEndpoints(t *testing.T) {
	mux := newTestApp(t)

	t.Run("sync rejects wrong secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/seed/sync", nil)
		req.Header.Set(SyncSecretHeader, "wrong")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sync applies the seed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/seed/sync", nil)
		req.Header.Set(SyncSecretHeader, testSyncSecret)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decodeEnvelope(t, rec)
		assert.EqualValues(t, 1, data["furnishersAdded"])
	})

	t.Run("export returns the raw document", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/api/export", "", false)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Contains(t, doc, "exportedAt")
		furnishers, ok := doc["furnishers"].([]any)
		require.True(t, ok)
		assert.Len(t, furnishers, 1)
		_, hasEnvelope := doc["success"]
		assert.False(t, hasEnvelope, "export is not wrapped in the response envelope")
	})
}

func TestHealthEndpoints(t *testing.T) {
	mux := newTestApp(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = doRequest(t, mux, http.MethodGet, "/ping", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var ping PingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ping))
	assert.Equal(t, "catalog-engine", ping.Service)
	assert.Equal(t, "test", ping.Environment)
}
