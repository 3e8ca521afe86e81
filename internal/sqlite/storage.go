package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned by [Storage.Get] when there is no snapshot with the name.
	ErrNotFound = errors.New("snapshot not found")
)

const (
	memory = ":memory:"
)

// Storage is a persistent snapshot storage backed by SQLite. It is safe for concurrent use.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - URI: ":memory:" (in-memory database)
//   - Workers: 1
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.URI(memory)
	cfg.Workers(1)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Put inserts the snapshots, replacing existing snapshots with the same names. All snapshots are
// written in a single transaction.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Put(ctx context.Context, snapshots ...Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return closed(fmt.Errorf("begin: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(
		ctx,
		`
		insert into snapshot (
			name,
			data,
			size,
			capacity,
			saved_at
		) values (
			:name,
			:data,
			:size,
			:capacity,
			:saved_at
		)
		on conflict (name) do update set
			data     = excluded.data,
			size     = excluded.size,
			capacity = excluded.capacity,
			saved_at = excluded.saved_at
		`,
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, snapshot := range snapshots {
		if _, err := stmt.ExecContext(
			ctx,
			sql.Named("name", snapshot.Name),
			sql.Named("data", snapshot.Data),
			sql.Named("size", snapshot.Size),
			sql.Named("capacity", snapshot.Capacity),
			sql.Named("saved_at", toTimestamp(snapshot.SavedAt)),
		); err != nil {
			return fmt.Errorf("insert %q: %w", snapshot.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Get returns the snapshot with the name.
//
// Returns [ErrNotFound] if there is no such snapshot and [ErrClosed] if the storage has been
// closed.
func (s *Storage) Get(ctx context.Context, name string) (*Snapshot, error) {
	var (
		snapshot Snapshot
		savedAt  int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`
		select
			name,
			data,
			size,
			capacity,
			saved_at
		from
			snapshot
		where
			name = :name
		`,
		sql.Named("name", name),
	).Scan(
		&snapshot.Name,
		&snapshot.Data,
		&snapshot.Size,
		&snapshot.Capacity,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, closed(err)
	}

	snapshot.SavedAt = fromTimestamp(savedAt)

	return &snapshot, nil
}

// Delete permanently removes the snapshots with the names and returns how many were removed.
// Names without a snapshot are ignored.
func (s *Storage) Delete(ctx context.Context, names ...string) (int, error) {
	res, err := s.db.ExecContext(
		ctx,
		`
		delete from snapshot
		where
			name in (
				select value from json_each(:names)
			)
		`,
		sql.Named("names", jsonNames(names)),
	)
	if err != nil {
		return 0, closed(err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(deleted), nil
}

// Names returns the names of all snapshots in ascending order.
func (s *Storage) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "select name from snapshot order by name asc")
	if err != nil {
		return nil, closed(fmt.Errorf("query: %w", err))
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return names, nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(
		ctx,
		`
		select
			coalesce(count(*), 0) as snapshots,
			coalesce(sum(size), 0) as items,
			coalesce(sum(length(data)), 0) as bytes
		from
			snapshot
		`,
	).Scan(
		&stats.Snapshots,
		&stats.Items,
		&stats.Bytes,
	)
	if err != nil {
		return nil, closed(err)
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Snapshot is an encoded vector stored under a name.
type Snapshot struct {
	// Name is the unique name of the snapshot.
	Name string
	// Data is the encoded content of the vector.
	Data []byte
	// Size is the number of items in the vector.
	Size int
	// Capacity is the capacity the vector had when it was saved.
	Capacity int
	// SavedAt is the time when the snapshot was saved.
	SavedAt time.Time
}

// Stats represents statistics about the storage.
type Stats struct {
	// Snapshots is the total number of snapshots in storage.
	Snapshots int
	// Items is the total number of items across all snapshots.
	Items int
	// Bytes is the total size of encoded data across all snapshots.
	Bytes int
}

// IsBusy reports whether err was caused by another connection holding a lock on the database.
// Such operations can be retried.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	params.Add("_foreign_keys", "on")

	path := cfg.path
	if path == memory {
		path = "file:" + memoryName()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
		params.Add("_cache_size", "-20000") // 20mb
	}
	for k, v := range cfg.query {
		if len(v) != 0 {
			params.Set(k, v[0])
		}
	}

	db, err := sql.Open("sqlite3", path+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if params.Get("mode") == "memory" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.workers)
		db.SetMaxIdleConns(cfg.workers)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	// Create table for snapshots.
	if _, err := db.Exec(
		`
		create table if not exists snapshot (
			name     text primary key,
			data     blob not null,
			size     int not null,
			capacity int not null,
			saved_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

// closed maps the error database/sql returns for a closed database to [ErrClosed].
func closed(err error) error {
	if err != nil && strings.Contains(err.Error(), "sql: database is closed") {
		return ErrClosed
	}
	return err
}

func jsonNames(names []string) string {
	jsonNames, _ := json.Marshal(names)
	return string(jsonNames)
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}

// memoryName returns a random name for a shared-cache in-memory database, so that every Storage
// gets its own database.
func memoryName() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return "vec-" + string(b)
}
