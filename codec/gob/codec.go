// This package contains a [codec.Codec] that stores items as a gob stream.
package gob

import (
	"bytes"
	"encoding/gob"
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

// Encode writes the number of items followed by the items themselves.
func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	batch := slices.Collect(items)

	c.buf.Reset()
	enc := gob.NewEncoder(c.buf)

	if err := enc.Encode(len(batch)); err != nil {
		return nil, fmt.Errorf("encode count: %w", err)
	}
	for i := range batch {
		if err := enc.Encode(&batch[i]); err != nil {
			return nil, fmt.Errorf("encode item %d: %w", i, err)
		}
	}

	return bytes.Clone(c.buf.Bytes()), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	dec := gob.NewDecoder(bytes.NewReader(data))

	var count int
	if err := dec.Decode(&count); err != nil {
		return fmt.Errorf("decode count: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("invalid count %d", count)
	}

	for i := range count {
		var item Item
		if err := dec.Decode(&item); err != nil {
			return fmt.Errorf("decode item %d: %w", i, err)
		}
		push(item)
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
