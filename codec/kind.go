// Package codec implements the bidirectional mapping between gom's typed
// property values and the SQLite storage classes (INTEGER, FLOAT, TEXT, BLOB),
// including the injection points for user-supplied byte transforms.
package codec

import "fmt"

// Kind identifies the declared type of a property value, independent of how
// it is ultimately stored.
type Kind int

const (
	KindInt8 Kind = iota + 1
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindBool
	KindFloat32
	KindFloat64
	KindText
	KindBlob
	KindTime
	KindStringList
	KindEnum
	KindReference
)

// Storage is the SQLite storage class a Kind is encoded as.
type Storage int

const (
	StorageInteger Storage = iota + 1
	StorageFloat
	StorageText
	StorageBlob
)

func (s Storage) String() string {
	switch s {
	case StorageInteger:
		return "INTEGER"
	case StorageFloat:
		return "FLOAT"
	case StorageText:
		return "TEXT"
	case StorageBlob:
		return "BLOB"
	default:
		return "UNKNOWN"
	}
}

// Storage returns the storage class used for a value of this kind in the
// absence of a custom transform. A property carrying a Transform always
// stores as StorageBlob regardless of its Kind (spec invariant).
func (k Kind) Storage() (Storage, error) {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindBool, KindEnum, KindReference:
		return StorageInteger, nil
	case KindFloat32, KindFloat64:
		return StorageFloat, nil
	case KindText, KindTime:
		return StorageText, nil
	case KindBlob, KindStringList:
		return StorageBlob, nil
	default:
		return 0, &UnsupportedKindError{Kind: k}
	}
}

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindBool:
		return "bool"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindTime:
		return "time"
	case KindStringList:
		return "string_list"
	case KindEnum:
		return "enum"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// UnsupportedKindError is reported when the codec is asked to bind or read a
// value kind it has no storage rule for. It signals a programmer error: the
// caller registered a property whose kind the codec does not recognize.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("codec: unsupported value kind %q", e.Kind)
}
