// Package mock provides test doubles for coda interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/coda"
)

// Interface compliance checks.
var (
	_ coda.Provider = (*Provider)(nil)
	_ coda.Session  = (*Session)(nil)
)

// Provider is a test double for coda.Provider.
// Set StartSessionFn before calling StartSession.
type Provider struct {
	StartSessionFn func(ctx context.Context, cfg coda.SessionConfig) (coda.Session, error)
}

// StartSession delegates to StartSessionFn.
func (p *Provider) StartSession(ctx context.Context, cfg coda.SessionConfig) (coda.Session, error) {
	return p.StartSessionFn(ctx, cfg)
}

// Session is a test double for coda.Session.
// Set SendFn before calling Send.
type Session struct {
	SendFn func(ctx context.Context, text string) (coda.Stream, error)
}

// Send delegates to SendFn.
func (s *Session) Send(ctx context.Context, text string) (coda.Stream, error) {
	return s.SendFn(ctx, text)
}
