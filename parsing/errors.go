package parsing

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrDuplicateArgument is returned by Prepare when a model declares two
// arguments with the same name.
var ErrDuplicateArgument = errors.New("duplicate argument")

// EmptyQueueError is returned when a token is dequeued from an exhausted
// queue. Arguments check Count and NextIsFlag before dequeuing, so seeing
// this error means an Argument broke its contract.
type EmptyQueueError struct{}

func (e *EmptyQueueError) Error() string {
	return "no tokens left to dequeue"
}

// NoConverterFoundError reports that no converter is registered for a
// type. It is raised while arguments are constructed.
type NoConverterFoundError struct {
	Type string
}

func (e *NoConverterFoundError) Error() string {
	return fmt.Sprintf("no converter registered for type %s", e.Type)
}

// ConversionError reports a token that could not be converted to the type
// of the argument it was offered to.
type ConversionError struct {
	Argument string
	Type     string
	Value    string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("invalid value %q for argument %s (expected %s): %v", e.Value, e.Argument, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// UnrecognizedArgumentsError carries the tokens left over once every
// declared argument has been offered the queue.
type UnrecognizedArgumentsError struct {
	Tokens []string
}

func (e *UnrecognizedArgumentsError) Error() string {
	return fmt.Sprintf("unrecognized arguments: %s", strings.Join(e.Tokens, " "))
}
