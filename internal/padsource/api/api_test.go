package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	server := httptest.NewServer(handler)
	return New(server.URL, 5*time.Second), server.Close
}

func TestListProjectsBareArray(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/projects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "project_name": "FHI2022"},
			{"id": 2, "project_name": "MiniLab"},
		})
	})
	defer done()

	rows, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "FHI2022", rows[0]["project_name"])
}

func TestListProjectsEnvelope(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":3,"project_name":"Wrapped"}]}`))
	})
	defer done()

	rows, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Wrapped", rows[0]["project_name"])
}

func TestProjectCardsEscapesName(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/projects/FHI%202022/cards", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`[{"id":10}]`))
	})
	defer done()

	rows, err := c.ProjectCards(context.Background(), "FHI 2022")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCardByID(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/cards/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":42,"sample_name":"Amoxicillin"}`))
	})
	defer done()

	rec, err := c.CardByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Amoxicillin", rec["sample_name"])
}

func TestCardByIDArrayPayload(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":42}]`))
	})
	defer done()

	rec, err := c.CardByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, float64(42), rec["id"])
}

func TestCardByIDNotFound(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer done()

	rec, err := c.CardByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestServerErrorSurfaces(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer done()

	_, err := c.ListProjects(context.Background())
	assert.Error(t, err)

	_, err = c.CardByID(context.Background(), 1)
	assert.Error(t, err)
}

func TestNetworkErrorSurfaces(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.ListProjects(context.Background())
	assert.Error(t, err)
}
