package helpers

import "github.com/labstack/echo/v4"

type ctxKey string

const (
	keyLookupKind    ctxKey = "lookup_kind"
	keyLookupOutcome ctxKey = "lookup_outcome"
)

// SetLookupOutcome records how a lookup request was served (cache, upstream,
// fallback or an error code) for the request log.
func SetLookupOutcome(c echo.Context, kind, outcome string) {
	c.Set(string(keyLookupKind), kind)
	c.Set(string(keyLookupOutcome), outcome)
}

func GetLookupOutcomeRaw(c echo.Context) (kind, outcome string, ok bool) {
	kind, ok = c.Get(string(keyLookupKind)).(string)
	if !ok {
		return "", "", false
	}
	outcome, ok = c.Get(string(keyLookupOutcome)).(string)
	return kind, outcome, ok
}
