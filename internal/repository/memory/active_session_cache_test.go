package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"documind-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetInvalidate(t *testing.T) {
	cache := NewActiveSessionCache(nil)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Put(&store.ActiveSession{SessionID: "abc"})
	got, ok := cache.Get("abc")
	require.True(t, ok)
	assert.Equal(t, "abc", got.SessionID)
	assert.Equal(t, 1, cache.Len())

	cache.Invalidate("abc")
	_, ok = cache.Get("abc")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestEnsureLoadedFastPathSkipsRehydrate(t *testing.T) {
	var loads int32
	cache := NewActiveSessionCache(func(ctx context.Context, id string) (*store.ActiveSession, error) {
		atomic.AddInt32(&loads, 1)
		return &store.ActiveSession{SessionID: id}, nil
	})

	cache.Put(&store.ActiveSession{SessionID: "warm"})

	s, err := cache.EnsureLoaded(context.Background(), "warm")
	require.NoError(t, err)
	assert.Equal(t, "warm", s.SessionID)
	assert.EqualValues(t, 0, atomic.LoadInt32(&loads))
}

func TestEnsureLoadedConcurrentCallsRehydrateOnce(t *testing.T) {
	var loads int32
	cache := NewActiveSessionCache(func(ctx context.Context, id string) (*store.ActiveSession, error) {
		atomic.AddInt32(&loads, 1)
		return &store.ActiveSession{SessionID: id}, nil
	})

	const workers = 16
	results := make([]*store.ActiveSession, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.EnsureLoaded(context.Background(), "shared")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))
	assert.Equal(t, 1, cache.Len())
}

func TestEnsureLoadedFailureLeavesNoEntry(t *testing.T) {
	var loads int32
	cache := NewActiveSessionCache(func(ctx context.Context, id string) (*store.ActiveSession, error) {
		atomic.AddInt32(&loads, 1)
		return nil, errors.New("index file gone")
	})

	_, err := cache.EnsureLoaded(context.Background(), "broken")

	var loadErr *SessionLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "broken", loadErr.SessionID)
	assert.Equal(t, 0, cache.Len())

	// A later attempt retries instead of serving a cached failure.
	_, err = cache.EnsureLoaded(context.Background(), "broken")
	require.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&loads))
}

func TestEnsureLoadedKeepsTypedErrors(t *testing.T) {
	want := &SessionLoadError{SessionID: "typed", Err: errors.New("no such index")}
	cache := NewActiveSessionCache(func(ctx context.Context, id string) (*store.ActiveSession, error) {
		return nil, want
	})

	_, err := cache.EnsureLoaded(context.Background(), "typed")

	var loadErr *SessionLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Same(t, want, loadErr)
}
