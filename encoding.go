package vec

import (
	"encoding/json"

	"github.com/teenjuna/vec/codec"
)

// Encode serializes the live items of the vector with c.
func (v *Vector[Item]) Encode(c codec.Codec[Item]) ([]byte, error) {
	return c.Encode(v.Values())
}

// Decode returns a new vector holding the items decoded from data with c.
func Decode[Item any](c codec.Codec[Item], data []byte) (*Vector[Item], error) {
	v := New[Item]()
	if err := DecodeInto(c, data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeInto appends the items decoded from data with c to v. On error, the items decoded before
// the failure stay appended.
func DecodeInto[Item any](c codec.Codec[Item], data []byte, v *Vector[Item]) error {
	return c.Decode(data, v.PushBack)
}

// MarshalJSON encodes the live items as a JSON array. An empty vector is encoded as [].
func (v *Vector[Item]) MarshalJSON() ([]byte, error) {
	items := v.Slice()
	if items == nil {
		items = make([]Item, 0)
	}
	return json.Marshal(items)
}

// UnmarshalJSON replaces the content of the vector with the items of a JSON array. The capacity
// becomes the number of items. The vector is not changed on error.
func (v *Vector[Item]) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	v.MoveFrom(Of(items...))
	return nil
}
