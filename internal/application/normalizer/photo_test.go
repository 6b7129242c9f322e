package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/profile-lookup/internal/application/normalizer"
	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

func TestNormalizePhoto_Accepts(t *testing.T) {
	cases := map[string]string{
		"plain":       "  https://pps.example/photo.jpg\n",
		"json string": `"https://pps.example/photo.jpg"`,
		"json object": `{"url": "https://pps.example/photo.jpg"}`,
		"nested":      `{"data": {"url": "https://pps.example/photo.jpg"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := normalizer.NormalizePhoto([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, "https://pps.example/photo.jpg", got.URL)
			assert.False(t, got.IsPrivate)
		})
	}
}

func TestNormalizePhoto_NoURL(t *testing.T) {
	for _, body := range []string{"", "   ", "http://insecure.example/p.jpg", "no picture", `{"url": ""}`, `{}`} {
		_, err := normalizer.NormalizePhoto([]byte(body))
		require.Error(t, err, body)
		assert.Equal(t, ports.LookupCodeNotFound, ports.LookupErrorCodeOf(err), body)
	}
}

func TestNormalizePhoto_Malformed(t *testing.T) {
	_, err := normalizer.NormalizePhoto([]byte(`{"url": `))
	require.Error(t, err)
	assert.Equal(t, ports.LookupCodeMalformedPayload, ports.LookupErrorCodeOf(err))
}
