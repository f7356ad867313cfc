package parsing

import (
	"strings"

	"github.com/pkg/errors"
)

// Model is implemented by command models. Arguments returns the model's
// positional arguments in declaration order, each bound to one of the
// model's fields.
type Model interface {
	Arguments(r *Registry) ([]Argument, error)
}

// Binder binds token queues onto a prepared Model.
type Binder struct {
	args []Argument
	opts []QueueOption
}

// Prepare discovers the arguments of m once. Any missing converter is
// reported here, before a single token has been looked at.
func Prepare(m Model, r *Registry, opts ...QueueOption) (*Binder, error) {
	args, err := m.Arguments(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(args))
	for _, a := range args {
		if _, ok := seen[a.Name()]; ok {
			return nil, errors.Wrapf(ErrDuplicateArgument, "argument %s", a.Name())
		}
		seen[a.Name()] = struct{}{}
	}
	return &Binder{args: args, opts: opts}, nil
}

// Arguments returns the prepared arguments in declaration order.
func (b *Binder) Arguments() []Argument {
	return append([]Argument(nil), b.args...)
}

// Bind offers q to every argument once, in declaration order. The first
// error stops binding and is returned as is. Tokens no argument claimed
// are left in q.
func (b *Binder) Bind(q *Queue) error {
	for _, a := range b.args {
		if _, err := a.Handle(q); err != nil {
			return err
		}
	}
	return nil
}

// BindAll binds tokens and fails with an UnrecognizedArgumentsError when
// any of them is left over. opts are applied after those given to Prepare.
func (b *Binder) BindAll(tokens []string, opts ...QueueOption) error {
	q := NewQueue(tokens, append(append([]QueueOption(nil), b.opts...), opts...)...)
	if err := b.Bind(q); err != nil {
		return err
	}
	if q.Count() > 0 {
		return &UnrecognizedArgumentsError{Tokens: q.Remaining()}
	}
	return nil
}

// Usage joins the usage fragments of every argument.
func (b *Binder) Usage() string {
	parts := make([]string, 0, len(b.args))
	for _, a := range b.args {
		parts = append(parts, a.Usage())
	}
	return strings.Join(parts, " ")
}
