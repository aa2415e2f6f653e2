package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbolt/docbolt/pkg/domain"
)

func newTestRouter(storage domain.DatabaseEngine) *mux.Router {
	router := mux.NewRouter()
	NewHandler(storage, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func TestHandler_HandleInsert(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid document",
			body:           `{"name":"Alice","age":30}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "document with existing ID",
			body:           `{"_id":"123","name":"Bob"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockEngine()
			router := newTestRouter(mock)

			req := httptest.NewRequest("POST", "/collections/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp["id"])
			}
		})
	}
}

func TestHandler_HandleGetById(t *testing.T) {
	mock := NewMockEngine()
	_, err := mock.Insert("users", domain.Document{"_id": "1", "name": "Alice"})
	require.NoError(t, err)
	router := newTestRouter(mock)

	req := httptest.NewRequest("GET", "/collections/users/documents/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var doc domain.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Alice", doc["name"])

	req = httptest.NewRequest("GET", "/collections/users/documents/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_HandleUpdateById(t *testing.T) {
	mock := NewMockEngine()
	_, err := mock.Insert("users", domain.Document{"_id": "1", "name": "Alice"})
	require.NoError(t, err)
	router := newTestRouter(mock)

	req := httptest.NewRequest("PATCH", "/collections/users/documents/1",
		bytes.NewBufferString(`{"age":31}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	doc, err := mock.GetById("users", "1")
	require.NoError(t, err)
	assert.EqualValues(t, 31, doc["age"])

	req = httptest.NewRequest("PATCH", "/collections/users/documents/missing",
		bytes.NewBufferString(`{"age":31}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_HandleDeleteById(t *testing.T) {
	mock := NewMockEngine()
	_, err := mock.Insert("users", domain.Document{"_id": "1"})
	require.NoError(t, err)
	router := newTestRouter(mock)

	req := httptest.NewRequest("DELETE", "/collections/users/documents/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = mock.GetById("users", "1")
	assert.Error(t, err)
}

func TestHandler_HandleFindAll(t *testing.T) {
	mock := NewMockEngine()
	_, err := mock.Insert("users", domain.Document{"_id": "1", "city": "Oslo"})
	require.NoError(t, err)
	_, err = mock.Insert("users", domain.Document{"_id": "2", "city": "Bergen"})
	require.NoError(t, err)
	router := newTestRouter(mock)

	req := httptest.NewRequest("GET", "/collections/users/find?city=Oslo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var docs []domain.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "1", docs[0].ID())
}

func TestHandler_ConcurrentFindAndInsert(t *testing.T) {
	mock := NewMockEngine()
	router := newTestRouter(mock)

	// Reads and writes race through the mock under -race; the call
	// counters must stay consistent.
	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest("POST", "/collections/users",
				bytes.NewBufferString(`{"name":"Alice"}`))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusCreated, w.Code)

			req = httptest.NewRequest("GET", "/collections/users/find", nil)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, mock.insertCalls)
	assert.Equal(t, workers, mock.findCalls)
}

func TestHandler_HandleCompact(t *testing.T) {
	mock := NewMockEngine()
	router := newTestRouter(mock)

	req := httptest.NewRequest("POST", "/collections/users/compact", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, mock.compactCalls)
}

func TestHandler_IndexRoutes(t *testing.T) {
	mock := NewMockEngine()
	router := newTestRouter(mock)

	req := httptest.NewRequest("POST", "/collections/users/indexes/name", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("GET", "/collections/users/indexes", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"indexes":["name"]}`, w.Body.String())

	req = httptest.NewRequest("DELETE", "/collections/users/indexes/name", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest("DELETE", "/collections/users/indexes/name", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_HealthAndStats(t *testing.T) {
	router := newTestRouter(NewMockEngine())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	req = httptest.NewRequest("GET", "/stats", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
