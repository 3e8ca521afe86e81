// This package contains a [codec.Codec] that stores items as a JSON array.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/teenjuna/vec/codec"
)

type Codec[Item any] struct {
	buf *bytes.Buffer
}

var _ codec.Codec[any] = (*Codec[any])(nil)

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{
		buf: new(bytes.Buffer),
	}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	batch := slices.Collect(items)
	if batch == nil {
		// An empty vector is [], not null.
		batch = make([]Item, 0)
	}

	c.buf.Reset()
	enc := json.NewEncoder(c.buf)

	if err := enc.Encode(batch); err != nil {
		return nil, err
	}

	return bytes.Clone(c.buf.Bytes()), nil
}

// Decode reads the array item by item, so a malformed item leaves the items before it pushed.
func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read array start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected array, got %v", tok)
	}

	for dec.More() {
		var item Item
		if err := dec.Decode(&item); err != nil {
			return fmt.Errorf("decode item: %w", err)
		}
		push(item)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read array end: %w", err)
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
