package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mesero/internal/domain"
	"mesero/internal/errors"
	"mesero/internal/result"
	"mesero/internal/watch"
)

type fakeClient struct {
	entries []domain.MenuEntry
	err     error
	calls   atomic.Int32
	block   chan struct{}
}

func (f *fakeClient) FetchMenu(ctx context.Context) ([]domain.MenuEntry, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, errors.NewRemoteError(errors.ReasonRemoteUnavailable, "cancelled", ctx.Err())
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeCatalogRepo struct {
	stored []domain.MenuEntry
	err    error
}

func (f *fakeCatalogRepo) ReplaceAll(_ context.Context, entries []domain.MenuEntry) error {
	if f.err != nil {
		return f.err
	}
	f.stored = entries
	return nil
}

func (f *fakeCatalogRepo) List(context.Context) ([]domain.MenuEntry, error) {
	return f.stored, f.err
}

func recvMenu[T any](t *testing.T, s *watch.Stream[result.Result[T]]) result.Result[T] {
	t.Helper()
	select {
	case res, ok := <-s.C():
		require.True(t, ok, "stream closed unexpectedly")
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		panic("unreachable")
	}
}

func catalog() []domain.MenuEntry {
	return []domain.MenuEntry{
		{ID: "p1", NameKey: "menu.paella", Price: "14.50", Category: "mains"},
		{ID: "p2", NameKey: "menu.flan", Price: "4.00", Category: "desserts"},
	}
}

func TestMenuService_ObserveMenu_LoadingThenSuccess(t *testing.T) {
	svc := NewMenuService(&fakeClient{entries: catalog()}, &fakeCatalogRepo{}, zap.NewNop())

	stream := svc.ObserveMenu(context.Background())
	defer stream.Cancel()

	assert.True(t, recvMenu(t, stream).IsLoading())

	res := recvMenu(t, stream)
	require.True(t, res.IsSuccess())
	entries, _ := res.Value()
	assert.Len(t, entries, 2)

	_, ok := <-stream.C()
	assert.False(t, ok, "single-shot stream must close after the outcome")
}

func TestMenuService_ObserveMenu_LoadingThenExactlyOneError(t *testing.T) {
	fetchErr := errors.NewRemoteError(errors.ReasonRemoteUnavailable, "down", nil)
	svc := NewMenuService(&fakeClient{err: fetchErr}, &fakeCatalogRepo{}, zap.NewNop())

	stream := svc.ObserveMenu(context.Background())
	defer stream.Cancel()

	assert.True(t, recvMenu(t, stream).IsLoading())

	res := recvMenu(t, stream)
	require.True(t, res.IsError())
	re, ok := errors.IsRemoteError(res.Err())
	require.True(t, ok)
	assert.Equal(t, errors.ReasonRemoteUnavailable, re.Reason)

	// Never a Success, never a second error.
	_, open := <-stream.C()
	assert.False(t, open)
}

func TestMenuService_EachSubscriptionFetchesIndependently(t *testing.T) {
	client := &fakeClient{entries: catalog()}
	svc := NewMenuService(client, &fakeCatalogRepo{}, zap.NewNop())

	for i := 0; i < 3; i++ {
		stream := svc.ObserveMenu(context.Background())
		recvMenu(t, stream) // loading
		recvMenu(t, stream) // outcome
		stream.Cancel()
	}

	assert.Equal(t, int32(3), client.calls.Load())
}

func TestMenuService_ObserveMenuEntry_Found(t *testing.T) {
	svc := NewMenuService(&fakeClient{entries: catalog()}, &fakeCatalogRepo{}, zap.NewNop())

	stream := svc.ObserveMenuEntry(context.Background(), "p1")
	defer stream.Cancel()

	assert.True(t, recvMenu(t, stream).IsLoading())

	res := recvMenu(t, stream)
	require.True(t, res.IsSuccess())
	entry, _ := res.Value()
	require.NotNil(t, entry)
	assert.Equal(t, "menu.paella", entry.NameKey)
}

func TestMenuService_ObserveMenuEntry_AbsentIsSuccessNotError(t *testing.T) {
	svc := NewMenuService(&fakeClient{entries: catalog()}, &fakeCatalogRepo{}, zap.NewNop())

	stream := svc.ObserveMenuEntry(context.Background(), "missing")
	defer stream.Cancel()

	recvMenu(t, stream) // loading

	res := recvMenu(t, stream)
	require.True(t, res.IsSuccess())
	entry, _ := res.Value()
	assert.Nil(t, entry)
}

func TestMenuService_ObserveMenu_CancelAbandonsInFlightFetch(t *testing.T) {
	client := &fakeClient{entries: catalog(), block: make(chan struct{})}
	svc := NewMenuService(client, &fakeCatalogRepo{}, zap.NewNop())

	stream := svc.ObserveMenu(context.Background())

	recvMenu(t, stream) // loading
	stream.Cancel()
	close(client.block)

	select {
	case res, ok := <-stream.C():
		assert.False(t, ok, "got unexpected emission in state %v", res.State())
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestMenuService_RefreshCatalog_PersistsSnapshot(t *testing.T) {
	repo := &fakeCatalogRepo{}
	svc := NewMenuService(&fakeClient{entries: catalog()}, repo, zap.NewNop())

	count, err := svc.RefreshCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, repo.stored, 2)

	stored, err := svc.SnapshotCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.stored, stored)
}

func TestMenuService_RefreshCatalog_FetchFailureDoesNotTouchSnapshot(t *testing.T) {
	repo := &fakeCatalogRepo{stored: catalog()}
	fetchErr := errors.NewRemoteError(errors.ReasonRemoteRejected, "status 500", nil)
	svc := NewMenuService(&fakeClient{err: fetchErr}, repo, zap.NewNop())

	_, err := svc.RefreshCatalog(context.Background())
	require.Error(t, err)
	assert.Len(t, repo.stored, 2)
}
