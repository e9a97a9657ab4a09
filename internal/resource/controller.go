package resource

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/gestor-erp/gestor/internal/shared"
)

// Gateway is the remote row-level CRUD boundary for one entity table. Select
// returns rows scoped to the ambient identity in ctx, ordered by creation
// time descending. Update reports ErrNotFound when zero rows matched. Delete
// reports the number of rows removed and leaves the zero-row interpretation
// to the caller.
type Gateway[E, In, Patch any] interface {
	Select(ctx context.Context) ([]E, error)
	Insert(ctx context.Context, row In, owner uuid.UUID) (E, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (E, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// Controller keeps the cache entry for one entity type consistent with the
// gateway across list/create/update/delete. Every successful mutation
// invalidates the whole key; the next List re-fetches.
type Controller[E, In, Patch any] struct {
	key      string
	store    *Store
	gateway  Gateway[E, In, Patch]
	logger   *slog.Logger
	validate *validator.Validate
	flight   singleflight.Group
	pending  atomic.Int32
}

// NewController binds a cache key to its gateway.
func NewController[E, In, Patch any](key string, store *Store, gateway Gateway[E, In, Patch], logger *slog.Logger) *Controller[E, In, Patch] {
	return &Controller[E, In, Patch]{
		key:      key,
		store:    store,
		gateway:  gateway,
		logger:   logger,
		validate: validator.New(),
	}
}

// Key returns the cache key this controller owns.
func (c *Controller[E, In, Patch]) Key() string {
	return c.key
}

// entryKey scopes the cache key to the ambient identity. The store is shared
// across every request in the process, so rows cached for one user must never
// be a cache hit for another; unauthenticated reads share one key whose rows
// are always empty.
func (c *Controller[E, In, Patch]) entryKey(ctx context.Context) string {
	if user := shared.IdentityFromContext(ctx); user != nil {
		return c.key + ":" + user.ID.String()
	}
	return c.key
}

// List returns the cached rows for this entity and caller, fetching from the
// gateway when the key is absent or poisoned by a previous failure.
// Concurrent calls for the same key are coalesced: one gateway request, every
// caller observes the identical result or error. A snapshot read before a
// mutation's invalidation is returned to its callers but never cached.
func (c *Controller[E, In, Patch]) List(ctx context.Context) ([]E, error) {
	key := c.entryKey(ctx)
	if entry, ok := c.store.Get(key); ok && !entry.Loading && entry.Err == nil {
		if rows, ok := entry.Data.([]E); ok {
			return rows, nil
		}
	}

	result := c.flight.DoChan(key, func() (any, error) {
		gen := c.store.Generation(key)
		c.store.SetLoading(key)
		rows, err := c.gateway.Select(context.WithoutCancel(ctx))
		if err != nil {
			err = wrapRemote(err)
			c.store.Fail(key, err)
			return nil, err
		}
		if rows == nil {
			rows = []E{}
		}
		c.store.SetIfCurrent(key, rows, gen)
		return rows, nil
	})

	select {
	case <-ctx.Done():
		// Caller lost interest; the shared fetch keeps running and settles
		// the cache entry for whoever asks next.
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]E), nil
	}
}

// Create validates the insert shape, attaches the ambient owner identity and
// inserts through the gateway. The cache key is invalidated exactly once, on
// success only.
func (c *Controller[E, In, Patch]) Create(ctx context.Context, in In) (E, error) {
	var zero E
	user := shared.IdentityFromContext(ctx)
	if user == nil {
		return zero, ErrUnauthenticated
	}
	if err := c.validate.Struct(in); err != nil {
		return zero, wrapValidation(err)
	}

	c.pending.Add(1)
	defer c.pending.Add(-1)

	row, err := c.gateway.Insert(ctx, in, user.ID)
	if err != nil {
		c.logger.Warn("insert failed", slog.String("key", c.key), slog.Any("error", err))
		return zero, wrapRemote(err)
	}
	c.store.Invalidate(c.entryKey(ctx))
	return row, nil
}

// Update patches the row identified by id. A target the gateway cannot find
// surfaces as ErrNotFound and leaves the cache untouched.
func (c *Controller[E, In, Patch]) Update(ctx context.Context, id uuid.UUID, patch Patch) (E, error) {
	var zero E
	if err := c.validate.Struct(patch); err != nil {
		return zero, wrapValidation(err)
	}

	c.pending.Add(1)
	defer c.pending.Add(-1)

	row, err := c.gateway.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, err
		}
		c.logger.Warn("update failed", slog.String("key", c.key), slog.Any("error", err))
		return zero, wrapRemote(err)
	}
	c.store.Invalidate(c.entryKey(ctx))
	return row, nil
}

// Delete removes the row identified by id as a direct user action: zero rows
// affected is reported as ErrNotFound.
func (c *Controller[E, In, Patch]) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := c.remove(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Discard removes the row identified by id as a cleanup step: zero rows
// affected is a no-op, not an error.
func (c *Controller[E, In, Patch]) Discard(ctx context.Context, id uuid.UUID) error {
	_, err := c.remove(ctx, id)
	return err
}

func (c *Controller[E, In, Patch]) remove(ctx context.Context, id uuid.UUID) (int64, error) {
	c.pending.Add(1)
	defer c.pending.Add(-1)

	affected, err := c.gateway.Delete(ctx, id)
	if err != nil {
		c.logger.Warn("delete failed", slog.String("key", c.key), slog.Any("error", err))
		return 0, wrapRemote(err)
	}
	if affected > 0 {
		c.store.Invalidate(c.entryKey(ctx))
	}
	return affected, nil
}

// Pending reports whether any mutation is in flight.
func (c *Controller[E, In, Patch]) Pending() bool {
	return c.pending.Load() > 0
}

// Subscribe observes cache entry changes for this controller's key as seen
// by the ambient identity in ctx.
func (c *Controller[E, In, Patch]) Subscribe(ctx context.Context, fn func(Entry)) func() {
	return c.store.Subscribe(c.entryKey(ctx), fn)
}
