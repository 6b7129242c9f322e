package ports

import "context"

// UpstreamResponse is the raw provider reply handed to the normalizer.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// UpstreamClient performs the provider call for one canonical key.
// A returned error means the provider could not be reached (timeout, network);
// any HTTP status, including failures, is reported through UpstreamResponse.
type UpstreamClient interface {
	Name() string
	Fetch(ctx context.Context, key string) (*UpstreamResponse, error)
}
