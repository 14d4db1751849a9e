package identity

import (
	"context"
	"net/http"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/pkg/apperror"
)

type ctxKey string

// SessionKey is the context key for the signed-in session
const SessionKey ctxKey = "session"

// Session is the operator behind a request and the upstream token acting for them
type Session struct {
	User        entity.User
	RemoteToken string
}

// WithSession adds the session to context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFrom extracts the session from context
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(SessionKey).(Session)
	return s, ok
}

// ContextIdentity resolves the operator from the request context
type ContextIdentity struct{}

// NewContextIdentity creates the identity used by the remote client
func NewContextIdentity() repository.Identity {
	return ContextIdentity{}
}

// CurrentUser returns the session user or ErrUnauthorized
func (ContextIdentity) CurrentUser(ctx context.Context) (*entity.User, error) {
	s, ok := SessionFrom(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	u := s.User
	return &u, nil
}

// AttachCredential sets the upstream bearer token when the session has one
func (ContextIdentity) AttachCredential(ctx context.Context, req *http.Request) {
	s, ok := SessionFrom(ctx)
	if !ok || s.RemoteToken == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.RemoteToken)
}
