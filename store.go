package vec

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/vec/internal/sqlite"
)

var (
	// ErrClosed is returned by [Store] methods when the store has been closed.
	ErrClosed = errors.New("store is closed")
	// ErrNotFound is returned by [Store.Load] when there is no snapshot with the name.
	ErrNotFound = sqlite.ErrNotFound
	// ErrInvalidName is returned when a snapshot name is blank.
	ErrInvalidName = errors.New("snapshot name can't be blank")
)

// StoreStats represents statistics about the snapshots in a [Store].
type StoreStats = sqlite.Stats

// Store keeps named snapshots of vectors in SQLite. It is safe for concurrent use, but the
// vectors passed to it must not be modified while it works with them.
type Store[Item any] struct {
	cfg     *StoreConfig[Item]
	storage *sqlite.Storage
	closed  *atomic.Bool
}

// OpenStore opens a store with the provided configuration functions.
//
// Default configuration:
//   - File: nil (in-memory database)
//   - Codec: JSON
//   - RetryPolicy: 3 attempts, 10ms apart
//   - Workers: GOMAXPROCS
//   - Logger: discards everything
//   - Metrics: nil
func OpenStore[Item any](configFuncs ...ConfigFunc[Item]) (*Store[Item], error) {
	cfg := newStoreConfig(configFuncs...)
	storage, err := sqlite.New(func(c *sqlite.Config) {
		c.URI(cfg.file.uri())
		c.Workers(cfg.workers)
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	store := Store[Item]{
		cfg:     cfg,
		storage: storage,
		closed:  new(atomic.Bool),
	}

	return &store, nil
}

// Save stores the content of v under name, replacing the previous snapshot with that name.
func (s *Store[Item]) Save(ctx context.Context, name string, v *Vector[Item]) error {
	return s.SaveAll(ctx, map[string]*Vector[Item]{name: v})
}

// SaveAll stores every vector under its key. The vectors are encoded concurrently and written in
// a single transaction: either all snapshots are saved or none.
func (s *Store[Item]) SaveAll(ctx context.Context, vectors map[string]*Vector[Item]) error {
	if s.closed.Load() {
		return ErrClosed
	}

	names := slices.Sorted(maps.Keys(vectors))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return ErrInvalidName
		}
	}

	var (
		savedAt   = time.Now()
		snapshots = make([]sqlite.Snapshot, len(names))
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.workers)
	for i, name := range names {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			v := vectors[name]
			data, err := v.Encode(s.cfg.codec.Derive())
			if err != nil {
				return fmt.Errorf("encode %q: %w", name, err)
			}

			snapshots[i] = sqlite.Snapshot{
				Name:     name,
				Data:     data,
				Size:     v.Size(),
				Capacity: v.Capacity(),
				SavedAt:  savedAt,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	err := s.retry(ctx, opSave, func() error {
		return s.storage.Put(ctx, snapshots...)
	})
	if err != nil {
		return fmt.Errorf("put snapshots: %w", s.mapErr(err))
	}

	s.cfg.metrics.stored(opSave, len(snapshots))
	s.cfg.logger.DebugContext(ctx, "saved snapshots", "names", names)

	return nil
}

// Load returns a new vector with the content of the snapshot saved under name. The vector gets
// the capacity the saved one had.
//
// Returns an error wrapping [ErrNotFound] if there is no such snapshot.
func (s *Store[Item]) Load(ctx context.Context, name string) (*Vector[Item], error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var snapshot *sqlite.Snapshot
	err := s.retry(ctx, opLoad, func() (err error) {
		snapshot, err = s.storage.Get(ctx, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, s.mapErr(err))
	}

	v := WithCapacity[Item](snapshot.Capacity)
	if err := DecodeInto(s.cfg.codec.Derive(), snapshot.Data, v); err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	if v.Size() != snapshot.Size {
		return nil, fmt.Errorf("decode %q: got %d items, want %d", name, v.Size(), snapshot.Size)
	}

	s.cfg.metrics.stored(opLoad, 1)
	s.cfg.logger.DebugContext(ctx, "loaded snapshot", "name", name, "size", v.Size())

	return v, nil
}

// Delete removes the snapshots with the names. Names without a snapshot are ignored.
func (s *Store[Item]) Delete(ctx context.Context, names ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(names) == 0 {
		return nil
	}

	var deleted int
	err := s.retry(ctx, opDelete, func() (err error) {
		deleted, err = s.storage.Delete(ctx, names...)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete snapshots: %w", s.mapErr(err))
	}

	s.cfg.metrics.stored(opDelete, deleted)
	s.cfg.logger.DebugContext(ctx, "deleted snapshots", "names", names, "deleted", deleted)

	return nil
}

// Names returns the names of all snapshots in ascending order.
func (s *Store[Item]) Names(ctx context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	names, err := s.storage.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", s.mapErr(err))
	}

	return names, nil
}

// Stats returns statistics about the snapshots in the store.
func (s *Store[Item]) Stats(ctx context.Context) (*StoreStats, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	stats, err := s.storage.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", s.mapErr(err))
	}

	return stats, nil
}

// Close closes the store. Closing a closed store returns [ErrClosed].
func (s *Store[Item]) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}

	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}

	return nil
}

// retry runs fn until it succeeds, fails with an error other than a busy database, or the retry
// policy gives up.
func (s *Store[Item]) retry(ctx context.Context, op operation, fn func() error) error {
	var (
		policy = s.cfg.retryPolicy.Derive()
		err    error
	)
	for policy.Attempt(ctx) {
		if err = fn(); err == nil || !sqlite.IsBusy(err) {
			return err
		}
		s.cfg.metrics.retried()
		s.cfg.logger.DebugContext(ctx, "sqlite is busy", "operation", op, "error", err)
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

func (s *Store[Item]) mapErr(err error) error {
	if errors.Is(err, sqlite.ErrClosed) {
		return ErrClosed
	}
	return err
}
