package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/store"
	testutil "github.com/trezcool/edudash/tests"
)

type filters struct {
	State string
	Year  int
}

func echoFetch(calls *int32) store.FetchFunc[filters, string] {
	return func(_ context.Context, f filters) (string, error) {
		atomic.AddInt32(calls, 1)
		return f.State, nil
	}
}

func TestStore_SetFilters(t *testing.T) {
	ctx := context.Background()
	var calls int32
	s := store.New(filters{State: "Lagos"}, echoFetch(&calls))

	require.NoError(t, s.Fetch(ctx))
	assert.Equal(t, "Lagos", s.Data())

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "Ogun"; return nil }))
	assert.Equal(t, "Ogun", s.Data())
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	err := s.SetFilters(ctx, func(f *filters) error { f.State = "Kano"; return errors.New("bad filter") })
	assert.EqualError(t, err, "bad filter")
	assert.Equal(t, filters{State: "Ogun"}, s.Filters())
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))

	require.NoError(t, s.Reset(ctx))
	snap := s.Snapshot()
	assert.Equal(t, filters{State: "Lagos"}, snap.Filters)
	assert.Equal(t, "Lagos", snap.Data)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
}

func TestStore_fetchError(t *testing.T) {
	ctx := context.Background()
	logger := &testutil.Logger{}
	fail := false
	s := store.New(filters{}, func(_ context.Context, f filters) (int, error) {
		if fail {
			return 0, errors.New("network down")
		}
		return f.Year, nil
	}, store.WithLogger[filters, int](logger), store.WithName[filters, int]("dashboard"))

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.Year = 2023; return nil }))
	fail = true
	err := s.SetFilters(ctx, func(f *filters) error { f.Year = 2024; return nil })
	assert.EqualError(t, err, "network down")

	snap := s.Snapshot()
	assert.Equal(t, 2023, snap.Data, "previous data is kept")
	assert.EqualError(t, snap.Err, "network down")
	assert.Equal(t, []string{"ERROR: dashboard: fetch failed (network down)"}, logger.Entries())

	fail = false
	require.NoError(t, s.Fetch(ctx))
	assert.NoError(t, s.Snapshot().Err)
	assert.Equal(t, 2024, s.Data())
}

func TestStore_staleResult(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	s := store.New(filters{}, func(_ context.Context, f filters) (string, error) {
		if f.State == "slow" {
			close(started)
			<-release
		}
		return f.State, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "slow"; return nil }))
	}()
	<-started

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "fast"; return nil }))
	close(release)
	wg.Wait()

	assert.Equal(t, "fast", s.Data(), "older fetch finished last and was discarded")
	assert.False(t, s.Snapshot().Loading)
}

func TestStore_debounce(t *testing.T) {
	ctx := context.Background()
	var calls int32
	s := store.New(filters{}, echoFetch(&calls), store.WithDebounce[filters, string](20*time.Millisecond))

	for _, state := range []string{"L", "La", "Lag", "Lagos"} {
		state := state
		require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = state; return nil }))
	}
	assert.True(t, s.Pending())
	assert.Equal(t, "Lagos", s.Filters().State)

	assert.Eventually(t, func() bool { return s.Data() == "Lagos" }, time.Second, 5*time.Millisecond)
	assert.False(t, s.Pending())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestStore_Flush(t *testing.T) {
	ctx := context.Background()
	var calls int32
	s := store.New(filters{}, echoFetch(&calls), store.WithDebounce[filters, string](time.Hour))

	require.NoError(t, s.Flush(ctx))
	assert.Zero(t, atomic.LoadInt32(&calls), "nothing pending")

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "Ogun"; return nil }))
	assert.Empty(t, s.Data())
	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, "Ogun", s.Data())
	assert.False(t, s.Pending())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestStore_Close(t *testing.T) {
	ctx := context.Background()
	var calls int32
	s := store.New(filters{}, echoFetch(&calls), store.WithDebounce[filters, string](10*time.Millisecond))

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "Lagos"; return nil }))
	s.Close()
	assert.False(t, s.Pending())

	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "Ogun"; return nil }))
	assert.False(t, s.Pending())
	assert.Equal(t, "Ogun", s.Filters().State)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

// ctxFetch fails like a real lookup would when its context is done.
func ctxFetch(started chan<- struct{}, release <-chan struct{}) store.FetchFunc[filters, string] {
	return func(ctx context.Context, f filters) (string, error) {
		if started != nil {
			started <- struct{}{}
		}
		if release != nil {
			select {
			case <-release:
			case <-ctx.Done():
			}
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return f.State, nil
	}
}

func TestStore_debounceOutlivesCaller(t *testing.T) {
	s := store.New(filters{}, ctxFetch(nil, nil), store.WithDebounce[filters, string](10*time.Millisecond))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.SetFilters(ctx, func(f *filters) error { f.State = "Lagos"; return nil }))
	cancel() // e.g. the request that typed the filter is over

	assert.Eventually(t, func() bool { return s.Data() == "Lagos" }, time.Second, 5*time.Millisecond)
	assert.NoError(t, s.Snapshot().Err)
}

func TestStore_CloseCancelsRunningFetch(t *testing.T) {
	started := make(chan struct{}, 1)
	logger := &testutil.Logger{}
	s := store.New(
		filters{}, ctxFetch(started, make(chan struct{})),
		store.WithDebounce[filters, string](time.Millisecond), store.WithLogger[filters, string](logger),
	)

	require.NoError(t, s.SetFilters(context.Background(), func(f *filters) error { f.State = "Lagos"; return nil }))
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("debounced fetch did not start")
	}
	s.Close()

	assert.Eventually(t, func() bool { return errors.Is(s.Snapshot().Err, context.Canceled) }, time.Second, 5*time.Millisecond)
	assert.Empty(t, s.Data())
}
