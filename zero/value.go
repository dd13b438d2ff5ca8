// Package zero provides utilities for working with default values of generic types.
package zero

import "reflect"

// Defaulter is implemented by types that have a canonical default value
// other than their Go zero value. Default is called on the zero value of T,
// so it must be defined on a value receiver.
type Defaulter[T any] interface {
	Default() T
}

// Value returns the default value for type T: the result of Default() if T
// implements Defaulter[T], otherwise the Go zero value.
//
// Example:
//
//	var defaultInt = zero.Value[int]()        // returns 0
//	var defaultStr = zero.Value[string]()     // returns ""
//	var defaultLvl = zero.Value[Level]()      // returns Level(0).Default()
func Value[T any]() T { //nolint:ireturn
	var zeroVal T

	if d, ok := any(zeroVal).(Defaulter[T]); ok {
		return d.Default()
	}

	return zeroVal
}

// IsZero reports whether value is the Go zero value for type T, compared
// with reflect.DeepEqual. It ignores Defaulter.
func IsZero[T any](value T) bool {
	var zeroVal T

	return reflect.DeepEqual(value, zeroVal)
}

// IsDefault reports whether value equals Value[T](), compared with
// reflect.DeepEqual.
func IsDefault[T any](value T) bool {
	return reflect.DeepEqual(value, Value[T]())
}
