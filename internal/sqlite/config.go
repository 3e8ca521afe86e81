package sqlite

import (
	"net/url"
	"strings"
)

type Config struct {
	path    string
	query   url.Values
	workers int
}

type ConfigFunc = func(c *Config)

// URI sets the database file, optionally followed by ?key=value parameters that are passed to
// the driver and override the defaults. ":memory:" opens a private in-memory database.
func (c *Config) URI(uri string) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		panic("URI can't be blank")
	}

	path, rawQuery, _ := strings.Cut(uri, "?")
	if path == "" {
		panic("URI path can't be blank")
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		panic("URI query is invalid")
	}

	c.path = path
	c.query = query
}

// Workers sets the number of connections that can be open at the same time.
func (c *Config) Workers(workers int) {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	c.workers = workers
}
