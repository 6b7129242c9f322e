package ports

import "context"

// HealthChecker probes one dependency of the lookup service (currently the
// Redis store backing the rate limiter). Check returns nil when healthy.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
