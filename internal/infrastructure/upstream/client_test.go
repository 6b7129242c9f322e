package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/upstream"
)

func TestInstagramClient_PostsUsernameWithCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/instagram/posts", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "ig.example", r.Header.Get("x-rapidapi-host"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "", body["maxId"])
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer ts.Close()

	c := upstream.NewInstagramClient(upstream.Config{BaseURL: ts.URL + "/", Host: "ig.example", APIKey: "secret", Timeout: time.Second}, logrus.New())
	resp, err := c.Fetch(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":{}}`, string(resp.Body))
	assert.Equal(t, "instagram", c.Name())
}

func TestWhatsAppClient_GetsPhoneQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wspicture", r.URL.Path)
		assert.Equal(t, "15551234", r.URL.Query().Get("phone"))
		_, _ = w.Write([]byte("https://pps.example/p.jpg"))
	}))
	defer ts.Close()

	c := upstream.NewWhatsAppClient(upstream.Config{BaseURL: ts.URL, APIKey: "k"}, nil)
	resp, err := c.Fetch(context.Background(), "15551234")
	require.NoError(t, err)
	assert.Equal(t, "https://pps.example/p.jpg", string(resp.Body))
}

func TestClient_ErrorStatusIsReturnedNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusForbidden} {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"nope"}`))
		}))

		c := upstream.NewInstagramClient(upstream.Config{BaseURL: ts.URL, APIKey: "k"}, logrus.New())
		resp, err := c.Fetch(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		ts.Close()
	}
}

func TestClient_TimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := upstream.NewInstagramClient(upstream.Config{BaseURL: ts.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	_, err := c.Fetch(context.Background(), "alice")
	require.Error(t, err)
	assert.Equal(t, ports.LookupCodeTransport, ports.LookupErrorCodeOf(err))
}

func TestClient_UnreachableIsTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := upstream.NewWhatsAppClient(upstream.Config{BaseURL: url, APIKey: "k", Timeout: time.Second}, nil)
	_, err := c.Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, ports.LookupCodeTransport, ports.LookupErrorCodeOf(err))
}
