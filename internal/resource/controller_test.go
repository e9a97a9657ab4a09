package resource

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestor-erp/gestor/internal/shared"
)

type widget struct {
	ID        uuid.UUID
	Nome      string
	Owner     uuid.UUID
	CreatedAt time.Time
}

type widgetInsert struct {
	Nome string `validate:"required"`
}

type widgetPatch struct {
	Nome string `validate:"required"`
}

// fakeGateway is an in-memory Gateway scoped to the ambient identity, with
// optional fault injection and a block channel that holds Select open after
// its snapshot is taken.
type fakeGateway struct {
	mu          sync.Mutex
	rows        []widget
	selectCalls int
	selectErr   error
	insertErr   error
	clock       time.Time

	selectStarted chan struct{}
	selectRelease chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (g *fakeGateway) tick() time.Time {
	g.clock = g.clock.Add(time.Second)
	return g.clock
}

func (g *fakeGateway) Select(ctx context.Context) ([]widget, error) {
	g.mu.Lock()
	g.selectCalls++
	started := g.selectStarted
	g.selectStarted = nil
	release := g.selectRelease
	if g.selectErr != nil {
		err := g.selectErr
		g.mu.Unlock()
		return nil, err
	}

	var out []widget
	if owner := shared.IdentityFromContext(ctx); owner != nil {
		for _, r := range g.rows {
			if r.Owner == owner.ID {
				out = append(out, r)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	g.mu.Unlock()

	// The snapshot above is fixed; holding here models a slow round trip.
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	return out, nil
}

func (g *fakeGateway) Insert(ctx context.Context, in widgetInsert, owner uuid.UUID) (widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.insertErr != nil {
		return widget{}, g.insertErr
	}
	row := widget{ID: uuid.New(), Nome: in.Nome, Owner: owner, CreatedAt: g.tick()}
	g.rows = append(g.rows, row)
	return row, nil
}

func (g *fakeGateway) Update(ctx context.Context, id uuid.UUID, patch widgetPatch) (widget, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows[i].Nome = patch.Nome
			return g.rows[i], nil
		}
	}
	return widget{}, ErrNotFound
}

func (g *fakeGateway) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows = append(g.rows[:i], g.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newTestController(g *fakeGateway) (*Controller[widget, widgetInsert, widgetPatch], *Store) {
	store := NewStore()
	ctrl := NewController[widget, widgetInsert, widgetPatch]("widgets", store, g, discardLogger())
	return ctrl, store
}

func authedContext() context.Context {
	return shared.ContextWithIdentity(context.Background(), shared.Identity{ID: uuid.New()})
}

func countInvalidations(store *Store, key string) *int {
	n := new(int)
	store.Subscribe(key, func(e Entry) {
		if !e.Loading && e.Data == nil && e.Err == nil {
			*n++
		}
	})
	return n
}

func TestCreateThenListIncludesRecordOnce(t *testing.T) {
	g := newFakeGateway()
	ctrl, store := newTestController(g)
	ctx := authedContext()

	invalidations := countInvalidations(store, ctrl.entryKey(ctx))

	created, err := ctrl.Create(ctx, widgetInsert{Nome: "parafuso"})
	require.NoError(t, err)
	require.Equal(t, 1, *invalidations, "create must invalidate exactly once")

	rows, err := ctrl.List(ctx)
	require.NoError(t, err)

	seen := 0
	for _, r := range rows {
		if r.ID == created.ID {
			seen++
		}
	}
	assert.Equal(t, 1, seen)
}

func TestListOrdersNewestFirst(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	first, err := ctrl.Create(ctx, widgetInsert{Nome: "primeiro"})
	require.NoError(t, err)
	second, err := ctrl.Create(ctx, widgetInsert{Nome: "segundo"})
	require.NoError(t, err)

	rows, err := ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID, "most recently created comes first")
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestListUsesCacheUntilInvalidated(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	_, err := ctrl.List(ctx)
	require.NoError(t, err)
	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, g.selectCalls, "second list must be a cache hit")

	_, err = ctrl.Create(ctx, widgetInsert{Nome: "novo"})
	require.NoError(t, err)

	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, g.selectCalls, "mutation forces a re-fetch")
}

func TestListsAreScopedToTheCallingUser(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)
	userA := authedContext()
	userB := authedContext()

	_, err := ctrl.Create(userA, widgetInsert{Nome: "segredo de A"})
	require.NoError(t, err)

	rowsA, err := ctrl.List(userA)
	require.NoError(t, err)
	require.Len(t, rowsA, 1)

	rowsB, err := ctrl.List(userB)
	require.NoError(t, err)
	assert.Empty(t, rowsB, "user B must never see user A's rows")
	assert.Equal(t, 2, g.selectCalls, "the second user's list is its own gateway fetch, not a cache hit")
}

func TestUnauthenticatedListDoesNotPoisonUserCaches(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	_, err := ctrl.Create(ctx, widgetInsert{Nome: "meu"})
	require.NoError(t, err)

	anon, err := ctrl.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, anon)

	rows, err := ctrl.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "the anonymous empty list must not be cached for authenticated callers")
}

func TestConcurrentListsCoalesce(t *testing.T) {
	g := newFakeGateway()
	g.selectStarted = make(chan struct{})
	g.selectRelease = make(chan struct{})
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	_, err := ctrl.Create(ctx, widgetInsert{Nome: "um"})
	require.NoError(t, err)

	type result struct {
		rows []widget
		err  error
	}
	results := make(chan result, 2)

	go func() {
		rows, err := ctrl.List(ctx)
		results <- result{rows, err}
	}()
	<-g.selectStarted // first fetch is in flight
	go func() {
		rows, err := ctrl.List(ctx)
		results <- result{rows, err}
	}()

	// The joining caller must not add a second gateway request.
	time.Sleep(20 * time.Millisecond)
	close(g.selectRelease)

	a := <-results
	b := <-results
	require.NoError(t, a.err)
	require.NoError(t, b.err)
	assert.Equal(t, 1, g.selectCalls, "exactly one gateway request")
	require.NotEmpty(t, a.rows)
	assert.Same(t, &a.rows[0], &b.rows[0], "both callers observe the identical resolved slice")
}

func TestInFlightFetchCannotBuryAMutation(t *testing.T) {
	g := newFakeGateway()
	g.selectStarted = make(chan struct{})
	g.selectRelease = make(chan struct{})
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	listDone := make(chan struct{})
	go func() {
		_, _ = ctrl.List(ctx)
		close(listDone)
	}()
	<-g.selectStarted // the fetch snapshotted an empty catalog and is held open

	created, err := ctrl.Create(ctx, widgetInsert{Nome: "recém-criado"})
	require.NoError(t, err)

	close(g.selectRelease) // pre-mutation snapshot settles after the invalidation
	<-listDone

	rows, err := ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1, "the stale snapshot must not be cached over the invalidation")
	assert.Equal(t, created.ID, rows[0].ID)
	assert.Equal(t, 2, g.selectCalls, "the post-mutation list re-fetches")
}

func TestCreateUnauthenticated(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)

	_, err := ctrl.Create(context.Background(), widgetInsert{Nome: "x"})
	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, g.rows)
}

func TestCreateValidatesMandatoryFields(t *testing.T) {
	g := newFakeGateway()
	ctrl, store := newTestController(g)
	ctx := authedContext()

	invalidations := countInvalidations(store, ctrl.entryKey(ctx))

	_, err := ctrl.Create(ctx, widgetInsert{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, g.rows, "validation failure must not reach the gateway")
	assert.Zero(t, *invalidations)
}

func TestCreateRemoteErrorCarriesMessageVerbatim(t *testing.T) {
	g := newFakeGateway()
	g.insertErr = errors.New(`duplicate key value violates unique constraint "produtos_sku_key"`)
	ctrl, store := newTestController(g)
	ctx := authedContext()

	// Prime the cache so we can check it stays untouched.
	_, err := ctrl.List(ctx)
	require.NoError(t, err)

	_, err = ctrl.Create(ctx, widgetInsert{Nome: "x"})
	require.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, `duplicate key value violates unique constraint "produtos_sku_key"`, Message(err))

	entry, ok := store.Get(ctrl.entryKey(ctx))
	require.True(t, ok, "failed create leaves the cache entry in place")
	assert.NoError(t, entry.Err)
}

func TestUpdateMissingTargetLeavesCacheUnmodified(t *testing.T) {
	g := newFakeGateway()
	ctrl, store := newTestController(g)
	ctx := authedContext()

	_, err := ctrl.List(ctx)
	require.NoError(t, err)
	before, ok := store.Get(ctrl.entryKey(ctx))
	require.True(t, ok)

	_, err = ctrl.Update(ctx, uuid.New(), widgetPatch{Nome: "renomeado"})
	require.ErrorIs(t, err, ErrNotFound)

	after, ok := store.Get(ctrl.entryKey(ctx))
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestDeleteTwiceReportsNotFoundAndNeverResurrects(t *testing.T) {
	g := newFakeGateway()
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	created, err := ctrl.Create(ctx, widgetInsert{Nome: "efêmero"})
	require.NoError(t, err)

	require.NoError(t, ctrl.Delete(ctx, created.ID))
	require.ErrorIs(t, ctrl.Delete(ctx, created.ID), ErrNotFound)

	rows, err := ctrl.List(ctx)
	require.NoError(t, err)
	for _, r := range rows {
		assert.NotEqual(t, created.ID, r.ID)
	}
}

func TestDiscardTreatsZeroRowsAsNoop(t *testing.T) {
	g := newFakeGateway()
	ctrl, store := newTestController(g)
	ctx := authedContext()

	invalidations := countInvalidations(store, ctrl.entryKey(ctx))

	require.NoError(t, ctrl.Discard(ctx, uuid.New()))
	assert.Zero(t, *invalidations, "a no-op cleanup must not invalidate")
}

func TestListFailureIsRetriedOnNextCall(t *testing.T) {
	g := newFakeGateway()
	g.selectErr = errors.New("connection reset")
	ctrl, _ := newTestController(g)
	ctx := authedContext()

	_, err := ctrl.List(ctx)
	require.ErrorIs(t, err, ErrRemote)

	g.mu.Lock()
	g.selectErr = nil
	g.mu.Unlock()

	_, err = ctrl.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, g.selectCalls)
}

func TestMutationsOnOneKeyLeaveOtherKeysAlone(t *testing.T) {
	store := NewStore()
	logger := discardLogger()
	gA := newFakeGateway()
	gB := newFakeGateway()
	ctrlA := NewController[widget, widgetInsert, widgetPatch]("alfa", store, gA, logger)
	ctrlB := NewController[widget, widgetInsert, widgetPatch]("beta", store, gB, logger)
	ctx := authedContext()

	_, err := ctrlB.List(ctx)
	require.NoError(t, err)

	_, err = ctrlA.Create(ctx, widgetInsert{Nome: "só em alfa"})
	require.NoError(t, err)

	_, err = ctrlB.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, gB.selectCalls, "beta cache survives alfa mutations")
}
