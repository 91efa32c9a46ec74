package directory

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestClient_ListPublicUsers(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/users/public", r.URL.Path)
		req.Equal("Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","fullName":"Alice Martin","role":"agent"},{"id":"2","fullName":"Bob Durand","role":"client"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", logs.GetLoggerFromLevel(slog.LevelDebug))
	users := client.ListPublicUsers(context.Background())

	req.Len(users, 2)
	req.Equal("Alice Martin", users[0].FullName)
	req.Equal("2", users[1].ID)
}

func TestClient_SearchUsersEscapesQuery(t *testing.T) {
	req := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/users/search", r.URL.Path)
		req.Equal("bob d", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"2","fullName":"Bob Durand"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", logs.GetLoggerFromLevel(slog.LevelDebug))
	users := client.SearchUsers(context.Background(), "bob d")

	req.Len(users, 1)
	req.Equal("Bob Durand", users[0].FullName)
}

func TestClient_FailuresDegradeToEmpty(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		users := NewClient(server.URL, "token-123", log).ListPublicUsers(context.Background())
		require.Empty(t, users)
		require.NotNil(t, users)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer server.Close()

		users := NewClient(server.URL, "token-123", log).SearchUsers(context.Background(), "bob")
		require.Empty(t, users)
		require.NotNil(t, users)
	})

	t.Run("unreachable host", func(t *testing.T) {
		users := NewClient("http://127.0.0.1:1", "token-123", log).ListPublicUsers(context.Background())
		require.Empty(t, users)
		require.NotNil(t, users)
	})
}
