package vec

import (
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/teenjuna/vec/codec"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/retry"
)

// StoreConfig is a config of a [Store].
//
// It is modified only by configuration functions passed to [OpenStore]. Every setter panics on an
// invalid value.
type StoreConfig[Item any] struct {
	file        *FileConfig
	codec       codec.Codec[Item]
	retryPolicy retry.Policy
	workers     int
	logger      *slog.Logger
	metrics     *Metrics
}

type ConfigFunc[Item any] = func(c *StoreConfig[Item])

// File sets the SQLite file of the store. A nil file keeps the snapshots in memory.
func (c *StoreConfig[Item]) File(file *FileConfig) {
	if file != nil {
		if file.path == "" {
			panic("file can't be blank")
		}
		if strings.Contains(file.path, "?") {
			panic("file can't contain ?")
		}
	}
	c.file = file
}

// Codec sets the codec used to encode the items of saved vectors.
func (c *StoreConfig[Item]) Codec(codec codec.Codec[Item]) {
	if codec == nil {
		panic("codec can't be nil")
	}
	c.codec = codec
}

// RetryPolicy sets the policy for retrying operations that fail because SQLite is busy.
func (c *StoreConfig[Item]) RetryPolicy(policy retry.Policy) {
	if policy == nil {
		panic("policy can't be nil")
	}
	c.retryPolicy = policy
}

// Workers sets the number of vectors encoded concurrently by [Store.SaveAll] and the number of
// open SQLite connections.
func (c *StoreConfig[Item]) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}

// Logger sets the logger the store reports its operations to at debug level.
func (c *StoreConfig[Item]) Logger(logger *slog.Logger) {
	if logger == nil {
		panic("logger can't be nil")
	}
	c.logger = logger
}

// Metrics sets the metrics the store records its operations into. A nil m disables recording.
func (c *StoreConfig[Item]) Metrics(m *Metrics) {
	c.metrics = m
}

func newStoreConfig[Item any](configFuncs ...ConfigFunc[Item]) *StoreConfig[Item] {
	cfg := StoreConfig[Item]{}
	cfg.File(nil)
	cfg.Codec(json.New[Item]())
	cfg.RetryPolicy(retry.Fixed(3, 10*time.Millisecond))
	cfg.Workers(runtime.GOMAXPROCS(0))
	cfg.Logger(slog.New(slog.DiscardHandler))
	cfg.Metrics(nil)
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&cfg)
		}
	}
	return &cfg
}
