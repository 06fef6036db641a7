package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-pedigree/internal/domain/pedigree"
)

func TestClient_MapsStatusToDomainErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pets/missing/ancestors":
			http.Error(w, "animal not found", http.StatusNotFound)
		default:
			http.Error(w, "invalid input", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, 0)
	require.NoError(t, err)

	_, err = c.Ancestors(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, pedigree.ErrNotFound)

	_, err = c.Compatibility(context.Background(), "a", "a")
	assert.ErrorIs(t, err, pedigree.ErrInvalidInput)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
}

func TestClient_RegistrationsPreviewAndApply(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotQuery = r.Method, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"root_id":"root","prefix":"KNL","applied":` + map[bool]string{true: "true", false: "false"}[r.Method == http.MethodPost] + `,"set":1,"assignments":[{"animal_id":"root","generation":0,"sequence":1,"code":"KNL-00-001"}]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0)
	require.NoError(t, err)

	res, err := c.Registrations(context.Background(), "root", "KNL", false)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "prefix=KNL", gotQuery)
	assert.False(t, res.Applied)
	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "KNL-00-001", res.Assignments[0].Code)

	res, err = c.Registrations(context.Background(), "root", "KNL", true)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, res.Applied)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("not a url", 0)
	assert.Error(t, err)
}
