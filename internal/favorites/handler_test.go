package favorites

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/pkg/common"
)

// catalogStub serves lookups from a fixed map, standing in for the
// database-backed catalog service.
type catalogStub struct {
	byName map[string]*catalog.Location
}

func (s *catalogStub) Create(_ context.Context, _ string) (*catalog.Location, error) { return nil, nil }
func (s *catalogStub) Delete(_ context.Context, _ int64) error                       { return nil }
func (s *catalogStub) GetByID(_ context.Context, _ int64) (*catalog.Location, error) { return nil, nil }
func (s *catalogStub) ListActive(_ context.Context) ([]*catalog.Location, error)     { return nil, nil }
func (s *catalogStub) PickRandom(_ context.Context) (*catalog.Location, error)       { return nil, nil }
func (s *catalogStub) RecordView(_ context.Context, _ int64) error                   { return nil }
func (s *catalogStub) Reset(_ context.Context) error                                 { return nil }

func (s *catalogStub) GetByName(_ context.Context, name string) (*catalog.Location, error) {
	if loc, ok := s.byName[name]; ok {
		return loc, nil
	}
	return nil, common.NewNotFoundError("location with name: %s not found", name)
}

func setupRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	stub := &catalogStub{byName: map[string]*catalog.Location{
		"Boston":  {ID: 1, Name: "Boston"},
		"Seattle": {ID: 2, Name: "Seattle"},
	}}
	h := NewHandler(m, stub)
	r := gin.New()
	r.POST("/favorites", h.AddFavorite)
	r.DELETE("/favorites", h.RemoveFavorite)
	r.GET("/favorites", h.ListFavorites)
	r.POST("/favorites/clear", h.ClearFavorites)
	r.GET("/favorites/current", h.CurrentFavorite)
	r.POST("/favorites/play", h.PlayFavorite)
	r.POST("/favorites/move-to-beginning", h.MoveToBeginning)
	r.POST("/favorites/move-to-end", h.MoveToEnd)
	r.POST("/favorites/swap", h.SwapFavorites)
	r.POST("/favorites/go-to", h.GoToPosition)
	r.POST("/favorites/go-to-name", h.GoToName)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddFavoriteHandler(t *testing.T) {
	m := NewManager(nil)
	r := setupRouter(m)

	w := doRequest(r, http.MethodPost, "/favorites", `{"name":"Boston"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, m.Len())
}

func TestAddFavoriteMissingName(t *testing.T) {
	r := setupRouter(NewManager(nil))

	w := doRequest(r, http.MethodPost, "/favorites", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddFavoriteUnknownLocation(t *testing.T) {
	r := setupRouter(NewManager(nil))

	w := doRequest(r, http.MethodPost, "/favorites", `{"name":"Atlantis"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRemoveFavoriteHandler(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	r := setupRouter(m)

	w := doRequest(r, http.MethodDelete, "/favorites", `{"name":"Boston"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, m.Len())

	// Removing from the now-empty list fails on the flat-500 contract
	w = doRequest(r, http.MethodDelete, "/favorites", `{"name":"Boston"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListFavoritesEmpty(t *testing.T) {
	r := setupRouter(NewManager(nil))

	w := doRequest(r, http.MethodGet, "/favorites", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPlayAndCurrentHandlers(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 2, Name: "Seattle"}))
	r := setupRouter(m)

	w := doRequest(r, http.MethodGet, "/favorites/current", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Boston")

	w = doRequest(r, http.MethodPost, "/favorites/play", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Boston")

	w = doRequest(r, http.MethodGet, "/favorites/current", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Seattle")
}

func TestPlayEmptyList(t *testing.T) {
	r := setupRouter(NewManager(nil))

	w := doRequest(r, http.MethodPost, "/favorites/play", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSwapHandler(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 2, Name: "Seattle"}))
	r := setupRouter(m)

	w := doRequest(r, http.MethodPost, "/favorites/swap", `{"id1":1,"id2":2}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// Self-swap is rejected
	w = doRequest(r, http.MethodPost, "/favorites/swap", `{"id1":1,"id2":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown IDs answer not-found
	w = doRequest(r, http.MethodPost, "/favorites/swap", `{"id1":1,"id2":42}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGoToHandler(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 2, Name: "Seattle"}))
	r := setupRouter(m)

	w := doRequest(r, http.MethodPost, "/favorites/go-to", `{"position":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Seattle")

	// Out-of-range positions wrap around
	w = doRequest(r, http.MethodPost, "/favorites/go-to", `{"position":3}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Boston")
}

func TestMoveHandlers(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 2, Name: "Seattle"}))
	r := setupRouter(m)

	w := doRequest(r, http.MethodPost, "/favorites/move-to-end", `{"id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{2, 1}, ids(t, m))

	w = doRequest(r, http.MethodPost, "/favorites/move-to-beginning", `{"id":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{1, 2}, ids(t, m))
}
