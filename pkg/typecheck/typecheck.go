// Package typecheck provides runtime shape assertions for loosely typed values
// such as node configuration maps and automation command arguments.
package typecheck

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is returned when a value does not have the expected runtime shape.
var ErrTypeMismatch = errors.New("type mismatch")

// Kind names a primitive or list-of-primitive value shape.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
	KindStringList
	KindIntList
	KindFloatList
	KindBoolList
	KindTimeList
)

var kindNames = map[Kind]string{
	KindString:     "string",
	KindInt:        "int",
	KindFloat:      "float",
	KindBool:       "bool",
	KindTime:       "time",
	KindStringList: "list(string)",
	KindIntList:    "list(int)",
	KindFloatList:  "list(float)",
	KindBoolList:   "list(bool)",
	KindTimeList:   "list(time)",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// IsList reports whether k describes an ordered sequence.
func (k Kind) IsList() bool {
	return k >= KindStringList
}

// Elem returns the element kind of a list kind, or k itself.
func (k Kind) Elem() Kind {
	if k.IsList() {
		return k - KindStringList
	}

	return k
}

// TypeMismatchError describes a failed assertion.
type TypeMismatchError struct {
	Expected string // Kind name, e.g. "time" or "list(float)"
	Property string // Property being checked, empty when unknown
	Got      string // Go type of the offending value
}

func (e *TypeMismatchError) Error() string {
	property := e.Property
	if property == "" {
		property = "value"
	}

	return fmt.Sprintf("%s: expected %s to be a %s kind, got %s", ErrTypeMismatch, property, e.Expected, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Check asserts that value has the shape described by kind.
func Check(kind Kind, value any, property string) error {
	if kind.IsList() {
		return checkList(kind, value, property)
	}

	if !matches(kind, reflect.ValueOf(value)) {
		return mismatch(kind, value, property)
	}

	return nil
}

func checkList(kind Kind, value any, property string) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return mismatch(kind, value, property)
	}

	elem := kind.Elem()
	for i := range v.Len() {
		if !matches(elem, v.Index(i)) {
			return mismatch(kind, value, property)
		}
	}

	return nil
}

func matches(kind Kind, v reflect.Value) bool {
	// Elements of []any arrive wrapped in an interface.
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return false
	}

	switch kind {
	case KindString:
		return v.Kind() == reflect.String
	case KindInt:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		default:
			return false
		}
	case KindFloat, KindTime:
		return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
	case KindBool:
		return v.Kind() == reflect.Bool
	default:
		return false
	}
}

func mismatch(kind Kind, value any, property string) error {
	return &TypeMismatchError{
		Expected: kind.String(),
		Property: property,
		Got:      fmt.Sprintf("%T", value),
	}
}

// String asserts that value is a string.
func String(value any, property string) error { return Check(KindString, value, property) }

// Int asserts that value is a Go integer.
func Int(value any, property string) error { return Check(KindInt, value, property) }

// Float asserts that value is a float32 or float64.
func Float(value any, property string) error { return Check(KindFloat, value, property) }

// Bool asserts that value is a bool.
func Bool(value any, property string) error { return Check(KindBool, value, property) }

// Time asserts that value is a float-backed timeline value.
func Time(value any, property string) error { return Check(KindTime, value, property) }

// StringList asserts that value is a slice of strings.
func StringList(value any, property string) error { return Check(KindStringList, value, property) }

// IntList asserts that value is a slice of integers.
func IntList(value any, property string) error { return Check(KindIntList, value, property) }

// FloatList asserts that value is a slice of floats.
func FloatList(value any, property string) error { return Check(KindFloatList, value, property) }

// BoolList asserts that value is a slice of bools.
func BoolList(value any, property string) error { return Check(KindBoolList, value, property) }

// TimeList asserts that value is a slice of timeline values.
func TimeList(value any, property string) error { return Check(KindTimeList, value, property) }
