package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
)

var errDisk = errors.New("disk full")

// flakyStore fails reads or writes on demand.
type flakyStore struct {
	kv.Store

	mu        sync.Mutex
	failSet   bool
	failGetOn string
}

func (f *flakyStore) setFailures(set bool, getKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet, f.failGetOn = set, getKey
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGetOn == key
	f.mu.Unlock()
	if fail {
		return nil, errDisk
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.Store.Set(ctx, key, value)
}

// fixedClock ticks one second per call starting at 2024-03-01 09:00 UTC.
func fixedClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	store *flakyStore
	repo  *records.Repository
	data  *DataService
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store := &flakyStore{Store: kv.NewMemoryStore()}
	repo := records.New(store)
	opts = append([]Option{WithClock(fixedClock()), WithIDGenerator(seqIDs())}, opts...)
	data := NewDataService(repo, nil, opts...)
	require.NoError(t, data.Refresh(context.Background()))
	return &fixture{store: store, repo: repo, data: data}
}

func ptr[T any](v T) *T { return &v }
