package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"socialgraph/backend/internal/graph"
)

func newTestRouter(t *testing.T) (*gin.Engine, *graph.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := graph.NewStore()
	_, err := store.AddUser("root", "root@platform.com", graph.RoleAdmin)
	require.NoError(t, err)
	return setupRouter(store, zap.NewNop()), store
}

func do(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, "GET", "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestAddUserEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	w := do(router, "POST", "/api/users", gin.H{"username": "alice", "email": "a@a.com"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, store.FindByUsername("alice"))

	// Duplicate username conflicts.
	w = do(router, "POST", "/api/users", gin.H{"username": "alice", "email": "b@b.com"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Malformed email is rejected.
	w = do(router, "POST", "/api/users", gin.H{"username": "bob", "email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields are rejected by binding.
	w = do(router, "POST", "/api/users", gin.H{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)
	_, err = store.AddUser("bob", "b@b.com", graph.RoleRegular)
	require.NoError(t, err)

	w := do(router, "POST", "/api/users/alice/follow", gin.H{"target": "bob"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, "GET", "/api/users/bob/connections", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var conns struct {
		Followers []string `json:"followers"`
		Following []string `json:"following"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conns))
	assert.Equal(t, []string{"alice"}, conns.Followers)
	assert.Empty(t, conns.Following)

	// Second follow conflicts.
	w = do(router, "POST", "/api/users/alice/follow", gin.H{"target": "bob"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Self follow conflicts.
	w = do(router, "POST", "/api/users/alice/follow", gin.H{"target": "alice"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown target is a 404.
	w = do(router, "POST", "/api/users/alice/follow", gin.H{"target": "ghost"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, "POST", "/api/users/alice/unfollow", gin.H{"target": "bob"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(router, "POST", "/api/users/alice/unfollow", gin.H{"target": "bob"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveFollowerEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)
	_, err = store.AddUser("bob", "b@b.com", graph.RoleRegular)
	require.NoError(t, err)

	w := do(router, "POST", "/api/users/alice/follow", gin.H{"target": "bob"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, "POST", "/api/users/bob/followers/remove", gin.H{"follower": "alice"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	alice := store.FindByUsername("alice")
	assert.Empty(t, store.FollowingOf(alice))
}

func TestPostAndCommentEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)
	_, err = store.AddUser("bob", "b@b.com", graph.RoleRegular)
	require.NoError(t, err)

	w := do(router, "POST", "/api/users/alice/posts", gin.H{"content": "hello"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, "POST", "/api/users/alice/posts/0/comments", gin.H{"author": "bob", "content": "hi"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Out-of-range index is a 404.
	w = do(router, "POST", "/api/users/alice/posts/5/comments", gin.H{"author": "bob", "content": "hi"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, "GET", "/api/users/alice", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Posted by alice: hello")
	assert.Contains(t, w.Body.String(), "Comment by bob: hi")
}

func TestDeleteUserEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)
	_, err = store.AddUser("bob", "b@b.com", graph.RoleRegular)
	require.NoError(t, err)
	w := do(router, "POST", "/api/users/alice/follow", gin.H{"target": "bob"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Non-admin actor is forbidden.
	w = do(router, "DELETE", "/api/users/bob", nil, map[string]string{"X-Actor": "alice"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing actor is forbidden.
	w = do(router, "DELETE", "/api/users/bob", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(router, "DELETE", "/api/users/bob", nil, map[string]string{"X-Actor": "root"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, store.FindByUsername("bob"))

	// The follow edge to the deleted user is gone.
	alice := store.FindByUsername("alice")
	assert.Empty(t, store.FollowingOf(alice))

	w = do(router, "DELETE", "/api/users/bob", nil, map[string]string{"X-Actor": "root"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePostEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)
	w := do(router, "POST", "/api/users/alice/posts", gin.H{"content": "hello"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, "DELETE", "/api/users/alice/posts/0", nil, map[string]string{"X-Actor": "alice"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(router, "DELETE", "/api/users/alice/posts/0", nil, map[string]string{"X-Actor": "root"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.FindByUsername("alice").Posts)
}

func TestReportEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	_, err := store.AddUser("alice", "a@a.com", graph.RoleRegular)
	require.NoError(t, err)

	w := do(router, "GET", "/api/report", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin User: root")
	assert.Contains(t, w.Body.String(), "Regular User: alice")
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, "GET", "/health", nil, nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = do(router, "GET", "/health", nil, map[string]string{"X-Request-ID": "fixed-id"})
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
