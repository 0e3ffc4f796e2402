package stremthru

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchForwardsConfigAndQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"streams":[{"name":"a"},{"name":"b"}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	body, err := client.Search(context.Background(), "eyJzdG9yZSI6InJkIn0%3D", "the matrix & co")
	require.NoError(t, err)

	assert.Equal(t, "/eyJzdG9yZSI6InJkIn0%3D/torz/search", gotPath)
	assert.Equal(t, "the matrix & co", gotQuery)
	assert.JSONEq(t, `{"streams":[{"name":"a"},{"name":"b"}]}`, string(body))
	assert.Equal(t, 2, CountStreams(body))
}

func TestSearchUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 5*time.Second).Search(context.Background(), "cfg", "x")
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.Equal(t, "boom", upstreamErr.Body)
}

func TestSearchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 5*time.Second).Search(context.Background(), "cfg", "x")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Search(context.Background(), "cfg", "x")
	require.Error(t, err)

	var upstreamErr *UpstreamError
	assert.False(t, errors.As(err, &upstreamErr))
}

func TestCountStreamsTolerant(t *testing.T) {
	assert.Equal(t, 0, CountStreams([]byte(`{}`)))
	assert.Equal(t, 0, CountStreams([]byte(`[]`)))
	assert.Equal(t, 1, CountStreams([]byte(`{"streams":[{}]}`)))
}
