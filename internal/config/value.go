package config

import (
	"bytes"
	"encoding/json"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

// Kind tags the type of a configuration value. Values are never implicitly
// coerced between kinds.
type Kind int

const (
	// KindInvalid is the zero Kind; a Value of this kind represents "absent".
	KindInvalid Kind = iota
	// KindString is a UTF-8 string value.
	KindString
	// KindInt is a 64-bit signed integer value.
	KindInt
	// KindBool is a boolean value.
	KindBool
	// KindStringList is an ordered list of strings.
	KindStringList
	// KindObject is a nested map of string keys to values.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindStringList:
		return "string list"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the five supported configuration value kinds.
// The zero Value has KindInvalid and stands for an absent value.
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
	list []string
	obj  map[string]Value
}

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int constructs an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Strings constructs a string-list value.
func Strings(items ...string) Value {
	return Value{kind: KindStringList, list: append([]string(nil), items...)}
}

// Object constructs an object value from the given members.
func Object(members map[string]Value) Value {
	m := make(map[string]Value, len(members))
	for k, v := range members {
		m[k] = v
	}
	return Value{kind: KindObject, obj: m}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.kind == KindInvalid }

// AsString returns the string payload, or ErrTypeMismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", errors.Wrapf(errors.ErrTypeMismatch, "want string, have %s", v.kind)
	}
	return v.str, nil
}

// AsInt returns the integer payload, or ErrTypeMismatch.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, errors.Wrapf(errors.ErrTypeMismatch, "want int, have %s", v.kind)
	}
	return v.num, nil
}

// AsBool returns the boolean payload, or ErrTypeMismatch.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, errors.Wrapf(errors.ErrTypeMismatch, "want bool, have %s", v.kind)
	}
	return v.flag, nil
}

// AsStringList returns a copy of the string-list payload, or ErrTypeMismatch.
func (v Value) AsStringList() ([]string, error) {
	if v.kind != KindStringList {
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "want string list, have %s", v.kind)
	}
	return append([]string(nil), v.list...), nil
}

// AsObject returns a copy of the object members, or ErrTypeMismatch.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, errors.Wrapf(errors.ErrTypeMismatch, "want object, have %s", v.kind)
	}
	m := make(map[string]Value, len(v.obj))
	for k, member := range v.obj {
		m[k] = member
	}
	return m, nil
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindStringList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, member := range v.obj {
			other, ok := o.obj[k]
			if !ok || !member.Equal(other) {
				return false
			}
		}
		return true
	default:
		return true // two absent values are equal
	}
}

// Interface returns the value in its native Go form, suitable for JSON
// encoding: string, int64, bool, []string or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindStringList:
		return append([]string(nil), v.list...)
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, member := range v.obj {
			m[k] = member.Interface()
		}
		return m
	default:
		return nil
	}
}

// FromInterface converts a decoded JSON value into a Value. Numbers must be
// integral; arrays must contain only strings. Anything else (floats, nulls,
// mixed arrays) is a type mismatch, mirroring the no-coercion rule.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		if t != float64(int64(t)) {
			return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "non-integral number %v", t)
		}
		return Int(int64(t)), nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "non-integral number %v", t)
		}
		return Int(i), nil
	case []any:
		items := make([]string, len(t))
		for i, el := range t {
			s, ok := el.(string)
			if !ok {
				return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "array element %d is not a string", i)
			}
			items[i] = s
		}
		return Strings(items...), nil
	case []string:
		return Strings(t...), nil
	case map[string]any:
		members := make(map[string]Value, len(t))
		for k, el := range t {
			member, err := FromInterface(el)
			if err != nil {
				return Value{}, errors.Wrapf(err, "object member %q", k)
			}
			members[k] = member
		}
		return Value{kind: KindObject, obj: members}, nil
	default:
		return Value{}, errors.Wrapf(errors.ErrTypeMismatch, "unsupported value %T", x)
	}
}

// MarshalJSON encodes the value in its native JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON value, inferring the kind from the JSON type.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(err, "decoding value")
	}

	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
