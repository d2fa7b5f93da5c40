package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

// State is the outcome of the startup session check.
type State string

const (
	StateVerifying       State = "verifying"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Bootstrapper verifies the persisted session on startup. It either confirms
// the stored token (directly or via at most one refresh) or forces a logout
// so the client starts from a clean unauthenticated state.
type Bootstrapper struct {
	session *Session
	state   State
}

func NewBootstrapper(s *Session) *Bootstrapper {
	return &Bootstrapper{session: s, state: StateVerifying}
}

// State returns the current bootstrap state.
func (b *Bootstrapper) State() State {
	return b.state
}

// Run resolves the startup state. On success it returns the verified user.
// A nil user with a nil error means there was no session to verify.
func (b *Bootstrapper) Run(ctx context.Context) (*models.User, error) {
	b.state = StateVerifying

	token, err := b.session.store.Get(ctx)
	if err != nil {
		b.state = StateUnauthenticated
		return nil, err
	}
	if token == "" {
		b.state = StateUnauthenticated
		return nil, nil
	}

	// Expiry is decided locally. A dead token is discarded without any
	// network round trip; refresh is reserved for a server-side 401 on a
	// token that still looks live.
	if !TokenValid(token, time.Now()) {
		b.forceLogout(ctx)
		return nil, nil
	}

	user, err := b.session.CurrentUser(ctx)
	if err == nil {
		b.state = StateAuthenticated
		return user, nil
	}

	if errors.Is(err, common.ErrorUnauthorized) {
		if _, rerr := b.session.Refresh(ctx); rerr == nil {
			if user, uerr := b.session.CurrentUser(ctx); uerr == nil {
				b.state = StateAuthenticated
				return user, nil
			}
		}
	}

	b.forceLogout(ctx)
	return nil, err
}

func (b *Bootstrapper) forceLogout(ctx context.Context) {
	_ = b.session.Logout(ctx)
	b.state = StateUnauthenticated
}
