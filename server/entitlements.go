package server

import (
	"context"

	"github.com/hupe1980/agentweave/engine"
)

// Entitlements is the quota seam consumed by the HTTP boundary. The
// orchestration core never calls it; the server checks Allow before driving
// an invocation and Records usage after a successful one.
type Entitlements interface {
	// Allow reports whether user has quota for one more invocation.
	Allow(ctx context.Context, user string) (bool, error)
	// Record charges the invocation's token usage against user.
	Record(ctx context.Context, user string, usage engine.Usage) error
}

// AllowAll is the default Entitlements implementation: everybody is always
// allowed and usage is discarded.
type AllowAll struct{}

// Allow implements Entitlements.
func (AllowAll) Allow(context.Context, string) (bool, error) { return true, nil }

// Record implements Entitlements.
func (AllowAll) Record(context.Context, string, engine.Usage) error { return nil }
