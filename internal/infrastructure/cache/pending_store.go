package cache

import (
	"context"
	"time"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

// PendingStore holds short-lived owner authorizations keyed by tenant.
// Entries expire on their own; Delete is the single-use consumption path.
type PendingStore interface {
	Set(ctx context.Context, key string, value entity.PendingAuthorization, ttl time.Duration) error
	Get(ctx context.Context, key string) (*entity.PendingAuthorization, bool, error)
	Delete(ctx context.Context, key string) error
}
