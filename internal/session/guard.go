// Package session resolves "who is the current user" and turns session loss
// into uniform recovery: a 401 from the who-am-I endpoint becomes an
// explicit no-user result, and logout always succeeds from the caller's
// point of view.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/pakaura/paktui/internal/api"
	"github.com/pakaura/paktui/internal/model"
)

type Guard struct {
	client *api.Client
	log    *zap.Logger
}

func NewGuard(client *api.Client, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{client: client, log: log}
}

// CurrentUser asks the backend who is signed in. An unauthenticated session
// resolves to (nil, nil) rather than an error; any other failure is
// returned as-is.
func (g *Guard) CurrentUser(ctx context.Context) (*model.User, error) {
	user, err := g.client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the backend session on a best-effort basis. Transport
// failures are logged and swallowed: the caller clears local state and
// navigates away regardless, so a dead network never traps the user in a
// signed-in UI.
func (g *Guard) Logout(ctx context.Context) {
	if err := g.client.Logout(ctx); err != nil {
		g.log.Warn("logout request failed, proceeding locally", zap.Error(err))
	}
}

// Expiry exposes the gateway's session-expiry broadcaster so views can
// subscribe for the length of their lifetime.
func (g *Guard) Expiry() *api.ExpiryBroadcaster {
	return g.client.Expiry()
}
