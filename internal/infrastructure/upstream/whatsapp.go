package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

const (
	DefaultWhatsAppBaseURL = "https://whatsapp-data.p.rapidapi.com"
	DefaultWhatsAppHost    = "whatsapp-data.p.rapidapi.com"
)

// WhatsAppClient fetches the profile photo URL linked to a phone number.
type WhatsAppClient struct {
	http *httpClient
}

func NewWhatsAppClient(cfg Config, logger *logrus.Logger) *WhatsAppClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultWhatsAppBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultWhatsAppHost
	}
	return &WhatsAppClient{http: newHTTPClient(cfg, logger)}
}

func (c *WhatsAppClient) Name() string { return "whatsapp" }

func (c *WhatsAppClient) Fetch(ctx context.Context, phone string) (*ports.UpstreamResponse, error) {
	q := url.Values{"phone": []string{phone}}
	return c.http.do(ctx, http.MethodGet, c.http.cfg.BaseURL+"/wspicture?"+q.Encode(), nil)
}
