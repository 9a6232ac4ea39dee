package codec

import "github.com/vmihailenco/msgpack/v5"

// Transform is a pair of pure functions that take a property's storage out
// of the codec's built-in Kind rules and into a user-owned BLOB encoding.
// A property carrying a Transform always serializes as BLOB, regardless of
// its declared Kind (spec.md §3, Property invariants).
type Transform struct {
	ToBlob   func(value any) ([]byte, error)
	FromBlob func(data []byte) (any, error)
}

// MsgpackTransform returns a Transform that round-trips values through
// MessagePack encoding. It is a convenience for properties that want a
// structured blob without hand-writing a codec, grounded on the teacher's
// use of vmihailenco/msgpack for its own cache value encoding.
//
// newValue must return a fresh pointer suitable as a Decode target, e.g.
//
//	codec.MsgpackTransform(func() any { return new(MyStruct) })
func MsgpackTransform(newValue func() any) Transform {
	return Transform{
		ToBlob: func(value any) ([]byte, error) {
			return msgpack.Marshal(value)
		},
		FromBlob: func(data []byte) (any, error) {
			ptr := newValue()
			if err := msgpack.Unmarshal(data, ptr); err != nil {
				return nil, err
			}
			return ptr, nil
		},
	}
}
