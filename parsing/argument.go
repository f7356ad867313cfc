package parsing

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Argument binds one field of a command model from the token queue.
type Argument interface {
	// Name is the display name of the bound field.
	Name() string

	// Handle consumes the tokens this argument claims from the front of q
	// and assigns the converted value. It reports whether anything was
	// consumed. On error the target field is left untouched.
	Handle(q *Queue) (bool, error)

	// Usage returns the fragment shown for this argument in usage text.
	Usage() string
}

// ScalarArgument binds exactly one token.
//
// A scalar never takes a flag-shaped token, so a value such as "-3" has to
// be passed through a flag instead.
type ScalarArgument[T any] struct {
	name    string
	dst     *T
	convert Converter[T]
}

// Scalar returns an argument that assigns one converted token to dst. It
// fails with a NoConverterFoundError when r has no converter for T.
func Scalar[T any](r *Registry, name string, dst *T) (*ScalarArgument[T], error) {
	fn, err := Find[T](r)
	if err != nil {
		return nil, err
	}
	return &ScalarArgument[T]{name: name, dst: dst, convert: fn}, nil
}

// Name returns the display name of the bound field.
func (a *ScalarArgument[T]) Name() string { return a.name }

// Handle assigns the front token to the field unless it is flag-shaped.
func (a *ScalarArgument[T]) Handle(q *Queue) (bool, error) {
	if !q.nextIsValue() {
		return false, nil
	}
	token, err := q.Dequeue()
	if err != nil {
		return false, err
	}
	v, err := convert(a.convert, a.name, token)
	if err != nil {
		return true, err
	}
	*a.dst = v
	return true, nil
}

// Usage returns "<name>".
func (a *ScalarArgument[T]) Usage() string {
	return "<" + a.name + ">"
}

// EnumerableArgument binds a run of tokens into a slice. It is greedy but
// stops at the first flag-shaped token or the end of input.
type EnumerableArgument[T any] struct {
	name    string
	dst     *[]T
	convert Converter[T]
}

// Enumerable returns an argument that collects tokens into dst. The
// converter is looked up for the element type T.
func Enumerable[T any](r *Registry, name string, dst *[]T) (*EnumerableArgument[T], error) {
	fn, err := Find[T](r)
	if err != nil {
		return nil, err
	}
	return &EnumerableArgument[T]{name: name, dst: dst, convert: fn}, nil
}

// Name returns the display name of the bound field.
func (a *EnumerableArgument[T]) Name() string { return a.name }

// Handle collects tokens up to the first flag or the end of input and
// assigns them only when every one of them converts.
func (a *EnumerableArgument[T]) Handle(q *Queue) (bool, error) {
	var list []T
	for q.nextIsValue() {
		token, err := q.Dequeue()
		if err != nil {
			return false, err
		}
		v, err := convert(a.convert, a.name, token)
		if err != nil {
			return true, err
		}
		list = append(list, v)
	}

	if len(list) == 0 {
		return false, nil
	}
	*a.dst = list
	return true, nil
}

// Usage returns "<name1 name2 name3 ...>" with the name lower-cased.
func (a *EnumerableArgument[T]) Usage() string {
	return fmt.Sprintf("<%[1]s1 %[1]s2 %[1]s3 ...>", strings.ToLower(a.name))
}

// FixedArgument binds exactly n consecutive non-flag tokens into a slice.
// When fewer than n are available nothing is consumed.
type FixedArgument[T any] struct {
	name    string
	n       int
	dst     *[]T
	convert Converter[T]
}

// Fixed returns an argument that collects exactly n tokens into dst.
func Fixed[T any](r *Registry, name string, dst *[]T, n int) (*FixedArgument[T], error) {
	if n < 1 {
		return nil, errors.Errorf("argument %s: fixed arity must be positive, got %d", name, n)
	}
	fn, err := Find[T](r)
	if err != nil {
		return nil, err
	}
	return &FixedArgument[T]{name: name, n: n, dst: dst, convert: fn}, nil
}

// Name returns the display name of the bound field.
func (a *FixedArgument[T]) Name() string { return a.name }

// Handle takes exactly n non-flag tokens, or none.
func (a *FixedArgument[T]) Handle(q *Queue) (bool, error) {
	window := q.peek(a.n)
	if len(window) < a.n {
		return false, nil
	}
	for i := range window {
		if q.flagAt(i) {
			return false, nil
		}
	}

	list := make([]T, 0, a.n)
	for i := 0; i < a.n; i++ {
		token, err := q.Dequeue()
		if err != nil {
			return false, err
		}
		v, err := convert(a.convert, a.name, token)
		if err != nil {
			return true, err
		}
		list = append(list, v)
	}
	*a.dst = list
	return true, nil
}

// Usage returns "<name1 ... nameN>" with the name lower-cased.
func (a *FixedArgument[T]) Usage() string {
	name := strings.ToLower(a.name)
	parts := make([]string, a.n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", name, i+1)
	}
	return "<" + strings.Join(parts, " ") + ">"
}
