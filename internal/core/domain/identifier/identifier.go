// Package identifier turns raw user-supplied identifiers into cache keys.
package identifier

import (
	"errors"
	"strings"
)

type Kind int

const (
	KindHandle Kind = iota + 1
	KindPhoneNumber
)

func (k Kind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindPhoneNumber:
		return "phone_number"
	default:
		return "unknown"
	}
}

var (
	ErrEmpty       = errors.New("identifier is required")
	ErrNoDigits    = errors.New("phone number contains no digits")
	ErrBadHandle   = errors.New("handle may only start with '@'")
	ErrUnknownKind = errors.New("unknown identifier kind")
)

// Canonicalize returns the cache key for raw. auxiliary is the country code for
// KindPhoneNumber and is ignored for KindHandle. Case and whitespace are preserved
// for handles; a handle carrying '@' anywhere past its first character is rejected
// so that canonical keys are fixed points.
func Canonicalize(raw string, kind Kind, auxiliary string) (string, error) {
	if raw == "" {
		return "", ErrEmpty
	}
	switch kind {
	case KindHandle:
		key := strings.TrimPrefix(raw, "@")
		if key == "" {
			return "", ErrEmpty
		}
		if strings.Contains(key, "@") {
			return "", ErrBadHandle
		}
		return key, nil
	case KindPhoneNumber:
		number := digits(raw)
		if number == "" {
			return "", ErrNoDigits
		}
		return digits(auxiliary) + number, nil
	default:
		return "", ErrUnknownKind
	}
}

func digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
