package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"animeflix/catalog/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, upstream string, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("JIKAN_BASE_URL", upstream)
	t.Setenv("JIKAN_THROTTLE_DELAY", "0")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data": [
			{"mal_id": 1, "title": "Cowboy Bebop", "score": 8.75},
			{"mal_id": 2, "score": null}
		], "pagination": {"last_visible_page": 3, "has_next_page": true, "current_page": 2}}`))
	}))
	defer upstream.Close()

	out, err := runCommand(t, upstream.URL, "search", "cowboy", "bebop", "--page", "2", "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=cowboy+bebop")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=2")
	assert.Contains(t, out, "Cowboy Bebop")
	assert.Contains(t, out, "8.8")
	assert.Contains(t, out, "Unknown Title")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Page 2 of 3")
}

func TestSearchCommand_RateLimited(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	_, err := runCommand(t, upstream.URL, "search")
	require.Error(t, err)
	assert.True(t, client.IsRateLimited(err))
}

func TestInfoCommand_Fallback(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	out, err := runCommand(t, upstream.URL, "info", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "showing placeholder")
	assert.Contains(t, out, "No additional information available.")
}

func TestInfoCommand_RequiresID(t *testing.T) {
	_, err := runCommand(t, "http://127.0.0.1:1", "info")
	assert.Error(t, err)
}
