package normalizer

import (
	"bytes"
	"strings"

	"github.com/avatarctic/profile-lookup/internal/core/domain/profile"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

var photoURLPaths = []string{"url", "result", "profile_pic", "profilePic", "data.url", "data.profile_pic"}

// NormalizePhoto accepts a bare URL body, a JSON string, or a JSON object holding
// the URL. Only https URLs are accepted.
func NormalizePhoto(payload []byte) (*profile.PhotoResult, error) {
	body := bytes.TrimSpace(payload)
	if len(body) == 0 {
		return nil, photoNotFound()
	}

	switch body[0] {
	case '{', '"':
		var doc any
		if err := payloadJSON.Unmarshal(body, &doc); err != nil {
			return nil, ports.NewLookupError(ports.LookupCodeMalformedPayload, "upstream photo response is not valid JSON", err)
		}
		var url string
		switch d := doc.(type) {
		case string:
			url = d
		case map[string]any:
			url, _ = firstString(d, photoURLPaths...)
		}
		return photoFromURL(url)
	default:
		return photoFromURL(string(body))
	}
}

func photoFromURL(raw string) (*profile.PhotoResult, error) {
	url := strings.TrimSpace(raw)
	if !strings.HasPrefix(url, "https://") {
		return nil, photoNotFound()
	}
	return &profile.PhotoResult{URL: url, IsPrivate: false}, nil
}

func photoNotFound() error {
	return ports.NewLookupError(ports.LookupCodeNotFound, "no photo URL in upstream response", nil)
}
