package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/avatarctic/profile-lookup/internal/application/services"
	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/httpserver"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/memcache"
	"github.com/avatarctic/profile-lookup/internal/infrastructure/upstream"
)

const connectionPayload = `{"result":{"user":{"username":"bob","full_name":"Bob","edge_followed_by":{"count":"1200"},"is_verified":1},
"edges":[{"node":{"id":"1","display_url":"https://cdn/1.jpg","__typename":"GraphVideo","edge_liked_by":{"count":5}}},
{"node":{"id":"2","display_url":"https://cdn/2.jpg","media_type":8}}]}}`

// IntegrationTestSuite runs the whole stack against fake RapidAPI providers.
type IntegrationTestSuite struct {
	suite.Suite
	instagram      *httptest.Server
	whatsapp       *httptest.Server
	api            *httptest.Server
	instagramCalls atomic.Int32
	whatsappStatus atomic.Int32
	client         *http.Client
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.client = &http.Client{Timeout: 5 * time.Second}

	s.instagram = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.instagramCalls.Add(1)
		if r.Header.Get("x-rapidapi-key") != "test-key" || r.URL.Path != "/api/instagram/posts" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "bob" {
			_, _ = io.WriteString(w, `{"message":"user not found"}`)
			return
		}
		_, _ = io.WriteString(w, connectionPayload)
	}))
	s.whatsapp = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status := int(s.whatsappStatus.Load()); status != 0 {
			w.WriteHeader(status)
			return
		}
		_, _ = io.WriteString(w, `{"url":"https://pps.whatsapp.net/`+r.URL.Query().Get("phone")+`.jpg"}`)
	}))

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	ig := upstream.NewInstagramClient(upstream.Config{BaseURL: s.instagram.URL, APIKey: "test-key", Timeout: time.Second}, logger)
	wa := upstream.NewWhatsAppClient(upstream.Config{BaseURL: s.whatsapp.URL, APIKey: "test-key", Timeout: time.Second}, logger)

	profiles := services.NewProfileLookupService(ig, memcache.NewTTLCache[*profile.CanonicalProfile](time.Minute, 10), nil, logger)
	photos := services.NewPhotoLookupService(wa, memcache.NewTTLCache[profile.PhotoResult](time.Minute, 10), "", nil, logger)
	srv := httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, httpserver.ServerDeps{
		ProfileService: profiles,
		PhotoService:   photos,
	})
	s.api = httptest.NewServer(srv.Echo())
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.api.Close()
	s.instagram.Close()
	s.whatsapp.Close()
}

func (s *IntegrationTestSuite) post(path, body string) (int, map[string]any) {
	resp, err := s.client.Post(s.api.URL+path, "application/json", bytes.NewBufferString(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	var out map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *IntegrationTestSuite) TestHealthCheck() {
	resp, err := s.client.Get(s.api.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestProfileFromConnectionShape() {
	status, out := s.post("/api/instagram-profile", `{"username":"@bob"}`)
	s.Require().Equal(http.StatusOK, status)

	p := out["profile"].(map[string]any)
	s.Equal("bob", p["username"])
	s.Equal(float64(1200), p["follower_count"])
	s.Equal(true, p["is_verified"])
	s.Equal(float64(2), p["media_count"])

	posts := p["posts"].([]any)
	s.Require().Len(posts, 2)
	s.Equal("video", posts[0].(map[string]any)["media_type"])
	s.Equal("carousel", posts[1].(map[string]any)["media_type"])

	before := s.instagramCalls.Load()
	status, _ = s.post("/api/instagram-profile", `{"username":"bob"}`)
	s.Equal(http.StatusOK, status)
	s.Equal(before, s.instagramCalls.Load(), "cached profile must not reach the provider")
}

func (s *IntegrationTestSuite) TestUnknownProfileIs404() {
	status, out := s.post("/api/instagram-profile", `{"username":"nobody"}`)
	s.Equal(http.StatusNotFound, status)
	s.Equal("Profile not found", out["error"])
}

func (s *IntegrationTestSuite) TestPhotoLookupAndFallback() {
	status, out := s.post("/api/whatsapp-photo", `{"phone":"555-0100","countryCode":"+44"}`)
	s.Require().Equal(http.StatusOK, status)
	s.Equal("https://pps.whatsapp.net/445550100.jpg", out["result"])
	s.Equal(false, out["is_photo_private"])

	s.whatsappStatus.Store(http.StatusTooManyRequests)
	defer s.whatsappStatus.Store(0)
	status, out = s.post("/api/whatsapp-photo", `{"phone_number":"999"}`)
	s.Equal(http.StatusOK, status)
	s.Equal(services.DefaultPhotoFallbackURL, out["result"])
	s.Equal(true, out["is_photo_private"])
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
