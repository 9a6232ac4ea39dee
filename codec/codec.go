package codec

import (
	"fmt"
	"strings"
	"time"
)

// ISO8601 is the wire format for KindTime values: UTC, second precision.
const ISO8601 = "2006-01-02T15:04:05Z"

// Bind converts a typed Go value into the form accepted by database/sql as a
// query argument (int64, float64, string or []byte), following the storage
// rules in spec.md §4.1.
//
// enumValues is only consulted for KindEnum; it is the entity property's
// declared value list, used to turn a string value into its ordinal.
//
// A property with a non-nil transform always binds through it, regardless
// of kind.
func Bind(kind Kind, value any, transform *Transform, enumValues []string) (any, error) {
	if transform != nil {
		b, err := transform.ToBlob(value)
		if err != nil {
			return nil, fmt.Errorf("codec: transform to blob: %w", err)
		}
		return b, nil
	}
	switch kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindReference:
		return bindInteger(value)
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("codec: bind bool: unexpected type %T", value)
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case KindFloat32, KindFloat64:
		return bindFloat(value)
	case KindText:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("codec: bind text: unexpected type %T", value)
		}
		return s, nil
	case KindBlob:
		b, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("codec: bind blob: unexpected type %T", value)
		}
		return b, nil
	case KindTime:
		return bindTime(value), nil
	case KindStringList:
		return bindStringList(value)
	case KindEnum:
		return bindEnum(value, enumValues)
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

// Read converts a value scanned out of a SQLite column back into the typed
// Go representation for the given kind. When the expected kind is unknown
// (expectedKnown is false), Read falls back to the ordering policy in
// spec.md §4.1: INTEGER -> int64, FLOAT -> float64, TEXT -> string,
// BLOB -> []byte.
func Read(kind Kind, expectedKnown bool, raw any, transform *Transform, enumValues []string) (any, error) {
	if transform != nil {
		b, ok := asBytes(raw)
		if !ok {
			return nil, fmt.Errorf("codec: read transform: unexpected type %T", raw)
		}
		v, err := transform.FromBlob(b)
		if err != nil {
			return nil, fmt.Errorf("codec: transform from blob: %w", err)
		}
		return v, nil
	}
	if !expectedKnown {
		return readFallback(raw), nil
	}
	switch kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64, KindReference:
		return readInteger(kind, raw)
	case KindBool:
		i, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return i != 0, nil
	case KindFloat32, KindFloat64:
		return readFloat(kind, raw)
	case KindText:
		s, ok := asString(raw)
		if !ok {
			return nil, fmt.Errorf("codec: read text: unexpected type %T", raw)
		}
		return s, nil
	case KindBlob:
		b, ok := asBytes(raw)
		if !ok {
			return nil, fmt.Errorf("codec: read blob: unexpected type %T", raw)
		}
		return b, nil
	case KindTime:
		return readTime(raw)
	case KindStringList:
		b, ok := asBytes(raw)
		if !ok {
			return nil, fmt.Errorf("codec: read string list: unexpected type %T", raw)
		}
		return readStringList(b), nil
	case KindEnum:
		i, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return readEnum(i, enumValues)
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

func readFallback(raw any) any {
	switch v := raw.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return v
	case string:
		return v
	case []byte:
		return append([]byte(nil), v...)
	case nil:
		return nil
	default:
		return v
	}
}

// bindTime encodes an instant-in-time as ISO-8601 UTC. A zero time.Time is
// treated as "null" under gom's historical rule: it is encoded as the Unix
// epoch rather than SQL NULL, so the
// round trip preserves type but not true nullability.
func bindTime(value any) string {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return time.Unix(0, 0).UTC().Format(ISO8601)
	}
	return t.UTC().Format(ISO8601)
}

func readTime(raw any) (any, error) {
	s, ok := asString(raw)
	if !ok {
		return nil, fmt.Errorf("codec: read time: unexpected type %T", raw)
	}
	t, err := time.Parse(ISO8601, s)
	if err != nil {
		return nil, fmt.Errorf("codec: read time: %w", err)
	}
	return t, nil
}

// bindStringList encodes a []string as a BLOB: each element UTF-8 encoded
// followed by a zero byte, the whole sequence terminated by an extra zero
// byte. A nil or empty list encodes as a single zero byte.
func bindStringList(value any) ([]byte, error) {
	list, ok := value.([]string)
	if !ok {
		if value == nil {
			return []byte{0}, nil
		}
		return nil, fmt.Errorf("codec: bind string list: unexpected type %T", value)
	}
	if len(list) == 0 {
		return []byte{0}, nil
	}
	var sb strings.Builder
	for _, s := range list {
		sb.WriteString(s)
		sb.WriteByte(0)
	}
	sb.WriteByte(0)
	return []byte(sb.String()), nil
}

func readStringList(b []byte) []string {
	if len(b) <= 1 {
		return nil
	}
	// Drop the terminating zero byte before splitting on element terminators.
	// Every element (including the last) is itself \0-terminated, so the
	// split still yields one spurious trailing empty element; drop it too.
	body := b[:len(b)-1]
	parts := strings.Split(string(body), "\x00")
	parts = parts[:len(parts)-1]
	out := make([]string, 0, len(parts))
	out = append(out, parts...)
	return out
}

func bindEnum(value any, enumValues []string) (any, error) {
	switch v := value.(type) {
	case string:
		for i, name := range enumValues {
			if name == v {
				return int64(i), nil
			}
		}
		return nil, fmt.Errorf("codec: bind enum: value %q is not a declared enum member", v)
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return nil, fmt.Errorf("codec: bind enum: unexpected type %T", value)
	}
}

func readEnum(ordinal int64, enumValues []string) (any, error) {
	if ordinal < 0 || int(ordinal) >= len(enumValues) {
		return nil, fmt.Errorf("codec: read enum: ordinal %d out of range [0,%d)", ordinal, len(enumValues))
	}
	return enumValues[ordinal], nil
}

func bindInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	default:
		return nil, fmt.Errorf("codec: bind integer: unexpected type %T", value)
	}
}

func readInteger(kind Kind, raw any) (any, error) {
	i, err := toInt64(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindInt8:
		return int8(i), nil
	case KindInt16:
		return int16(i), nil
	case KindInt32:
		return int32(i), nil
	case KindInt64, KindReference:
		return i, nil
	case KindUint8:
		return uint8(i), nil
	case KindUint16:
		return uint16(i), nil
	case KindUint32:
		return uint32(i), nil
	case KindUint64:
		return uint64(i), nil
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
}

func bindFloat(value any) (any, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return nil, fmt.Errorf("codec: bind float: unexpected type %T", value)
	}
}

func readFloat(kind Kind, raw any) (any, error) {
	f, err := toFloat64(raw)
	if err != nil {
		return nil, err
	}
	if kind == KindFloat32 {
		return float32(f), nil
	}
	return f, nil
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case []byte:
		return 0, fmt.Errorf("codec: read integer: got blob")
	default:
		return 0, fmt.Errorf("codec: read integer: unexpected type %T", raw)
	}
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("codec: read float: unexpected type %T", raw)
	}
}

func asString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

func asBytes(raw any) ([]byte, bool) {
	switch v := raw.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
