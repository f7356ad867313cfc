// Package resources describes the lifecycle of stateful external
// dependencies, such as databases or message queues, that a command line
// application may need to set up, check or tear down.
package resources

import (
	"context"
	"fmt"
)

// StatefulResource is implemented by adapters over an external resource.
// Every operation fails by returning an error and should stop early when
// ctx is cancelled.
type StatefulResource interface {
	// Check verifies that the resource configuration is valid.
	Check(ctx context.Context) error

	// ClearState removes any state persisted within the resource.
	ClearState(ctx context.Context) error

	// Teardown removes the resource.
	Teardown(ctx context.Context) error

	// Setup configures the resource so that the system can use it.
	Setup(ctx context.Context) error

	// DetermineStatus reports the current state of the resource.
	DetermineStatus(ctx context.Context) (fmt.Stringer, error)

	// Type is the category of the resource, used for filtering.
	Type() string

	// Name identifies the resource.
	Name() string
}

// Status is a plain text status report.
type Status string

func (s Status) String() string { return string(s) }

// StatusOkay is reported by Base.
const StatusOkay Status = "Okay"

// Base implements StatefulResource with operations that do nothing.
// Embed it and override only what the resource needs.
type Base struct {
	typ  string
	name string
}

// NewBase returns a Base with the given type and name.
func NewBase(typ, name string) Base {
	return Base{typ: typ, name: name}
}

func (b Base) Check(ctx context.Context) error      { return ctx.Err() }
func (b Base) ClearState(ctx context.Context) error { return ctx.Err() }
func (b Base) Teardown(ctx context.Context) error   { return ctx.Err() }
func (b Base) Setup(ctx context.Context) error      { return ctx.Err() }

func (b Base) DetermineStatus(ctx context.Context) (fmt.Stringer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return StatusOkay, nil
}

func (b Base) Type() string { return b.typ }
func (b Base) Name() string { return b.name }
