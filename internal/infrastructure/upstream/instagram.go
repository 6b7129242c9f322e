package upstream

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const (
	DefaultInstagramBaseURL = "https://instagram120.p.rapidapi.com"
	DefaultInstagramHost    = "instagram120.p.rapidapi.com"
)

// InstagramClient fetches profile and recent posts for a handle.
type InstagramClient struct {
	http *httpClient
}

func NewInstagramClient(cfg Config, logger *logrus.Logger) *InstagramClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultInstagramBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultInstagramHost
	}
	return &InstagramClient{http: newHTTPClient(cfg, logger)}
}

func (c *InstagramClient) Name() string { return "instagram" }

func (c *InstagramClient) Fetch(ctx context.Context, username string) (*ports.UpstreamResponse, error) {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(map[string]string{
		"username": username,
		"maxId":    "",
	})
	if err != nil {
		return nil, err
	}
	return c.http.do(ctx, http.MethodPost, c.http.cfg.BaseURL+"/api/instagram/posts", body)
}
