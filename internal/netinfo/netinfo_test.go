package netinfo

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounce(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := Announce(context.Background(), srv.URL, "203.0.113.9:3001", true)
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.9:3001", got["address"])
	assert.Equal(t, true, got["reachable"])
}

func TestAnnounceWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := Announce(context.Background(), srv.URL, "203.0.113.9:3001", false)
	assert.Error(t, err)
}

func TestIsPortOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	assert.True(t, IsPortOpen(host, port, time.Second))
	srv.Close()
	assert.False(t, IsPortOpen(host, port, time.Second))
}
