package vec

import (
	"net/url"
	"strings"
)

// FileConfig is the SQLite file a [Store] keeps its snapshots in.
type FileConfig struct {
	path    string
	durable bool
}

// File returns a [FileConfig] for the file at path. Any ?query part of the path is ignored.
func File(path string) *FileConfig {
	return &FileConfig{path: strings.TrimSpace(path)}
}

// Durable makes every commit wait for the data to reach the disk.
func (c *FileConfig) Durable(durable bool) *FileConfig {
	c.durable = durable
	return c
}

func (c *FileConfig) uri() string {
	if c == nil {
		return ":memory:"
	}

	query := url.Values{}
	if c.durable {
		query.Set("_sync", "full")
	}

	path, _, _ := strings.Cut(c.path, "?")
	if len(query) == 0 {
		return path
	}

	return path + "?" + query.Encode()
}
