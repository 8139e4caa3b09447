package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connect-four-server/internal/service/leaderboard"
)

type stubStore struct {
	entries  []leaderboard.Entry
	err      error
	gotLimit int
}

func (s *stubStore) RecordWin(context.Context, string) error { return nil }

func (s *stubStore) Top(_ context.Context, n int) ([]leaderboard.Entry, error) {
	s.gotLimit = n
	if s.err != nil {
		return nil, s.err
	}
	if n < len(s.entries) {
		return s.entries[:n], nil
	}
	return s.entries, nil
}

func doRequest(store *stubStore, url string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/leaderboard", NewLeaderboardHandler(store).Top)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestTopReturnsEntries(t *testing.T) {
	store := &stubStore{entries: []leaderboard.Entry{
		{Username: "alice", Wins: 5},
		{Username: "bob", Wins: 2},
	}}

	w := doRequest(store, "/api/leaderboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, store.gotLimit)

	var body struct {
		Leaderboard []leaderboard.Entry `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, store.entries, body.Leaderboard)
}

func TestTopLimitQuery(t *testing.T) {
	store := &stubStore{}

	w := doRequest(store, "/api/leaderboard?limit=3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, store.gotLimit)

	// Limits above the cap are clamped.
	w = doRequest(store, "/api/leaderboard?limit=5000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, store.gotLimit)
}

func TestTopRejectsBadLimit(t *testing.T) {
	store := &stubStore{}

	for _, url := range []string{
		"/api/leaderboard?limit=0",
		"/api/leaderboard?limit=-1",
		"/api/leaderboard?limit=ten",
	} {
		w := doRequest(store, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, "url %s", url)
	}
}

func TestTopStoreFailure(t *testing.T) {
	store := &stubStore{err: errors.New("backend down")}

	w := doRequest(store, "/api/leaderboard")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
