package parsing

import (
	"reflect"
	"strconv"
	"time"
)

// Converter turns one raw token into a value of type T.
type Converter[T any] func(token string) (T, error)

// Registry maps target types to their converters. The zero value is an
// empty registry ready to use; NewRegistry adds the builtin converters.
type Registry struct {
	converters map[reflect.Type]any
}

// NewRegistry returns a registry holding converters for the builtin
// scalar types, time.Duration and time.Time (RFC 3339).
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[reflect.Type]any)}

	Register(r, func(s string) (string, error) { return s, nil })
	Register(r, strconv.ParseBool)
	Register(r, strconv.Atoi)
	Register(r, signed[int8](8))
	Register(r, signed[int16](16))
	Register(r, signed[int32](32))
	Register(r, signed[int64](64))
	Register(r, unsigned[uint](strconv.IntSize))
	Register(r, unsigned[uint8](8))
	Register(r, unsigned[uint16](16))
	Register(r, unsigned[uint32](32))
	Register(r, unsigned[uint64](64))
	Register(r, func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
	Register(r, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	Register(r, time.ParseDuration)
	Register(r, func(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) })

	return r
}

// Register associates T with fn. A converter registered earlier for the
// same type is replaced.
func Register[T any](r *Registry, fn Converter[T]) {
	if r.converters == nil {
		r.converters = make(map[reflect.Type]any)
	}
	r.converters[reflect.TypeFor[T]()] = fn
}

// Find returns the converter registered for exactly T.
func Find[T any](r *Registry) (Converter[T], error) {
	typ := reflect.TypeFor[T]()
	fn, ok := r.converters[typ]
	if !ok {
		return nil, &NoConverterFoundError{Type: typ.String()}
	}
	return fn.(Converter[T]), nil
}

func signed[T int8 | int16 | int32 | int64](bits int) Converter[T] {
	return func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		return T(n), err
	}
}

func unsigned[T uint | uint8 | uint16 | uint32 | uint64](bits int) Converter[T] {
	return func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		return T(n), err
	}
}

// convert runs fn on token and wraps a failure in a ConversionError for
// the named argument.
func convert[T any](fn Converter[T], name, token string) (T, error) {
	v, err := fn(token)
	if err != nil {
		var zero T
		return zero, &ConversionError{
			Argument: name,
			Type:     reflect.TypeFor[T]().String(),
			Value:    token,
			Err:      err,
		}
	}
	return v, nil
}
