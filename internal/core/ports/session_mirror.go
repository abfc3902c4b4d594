package ports

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// SessionMirror is the best-effort secondary record of "who is logged in",
// kept for view rendering. It is never consulted for authorization; the
// token is the source of truth. Whenever a token is reissued the mirror must
// be refreshed or cleared in the same operation.
type SessionMirror interface {
	Put(ctx context.Context, claims domain.ClaimSet) error
	Get(ctx context.Context, accountID string) (domain.ClaimSet, error)
	Clear(ctx context.Context, accountID string) error
}
