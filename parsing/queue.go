package parsing

import (
	"strings"
	"unicode/utf8"
)

// DefaultFlagPrefix holds the characters a flag token may start with.
const DefaultFlagPrefix = "-"

// Queue is a FIFO of raw tokens that are consumed by arguments during a
// single binding pass.
type Queue struct {
	tokens []string
	prefix string

	// Tokens at or past this index of the original input are never flags.
	literalFrom int
	consumed    int
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithFlagPrefix sets the characters that mark a token as a flag. Every
// character in chars is a valid prefix on its own.
func WithFlagPrefix(chars string) QueueOption {
	return func(q *Queue) {
		q.prefix = chars
	}
}

// WithLiteralFrom marks the tokens at index i and beyond as plain values,
// whatever their shape. It is used for the tail following a "--"
// terminator. A negative i leaves every token subject to classification.
func WithLiteralFrom(i int) QueueOption {
	return func(q *Queue) {
		if i >= 0 {
			q.literalFrom = i
		}
	}
}

// NewQueue returns a queue holding a copy of tokens.
func NewQueue(tokens []string, opts ...QueueOption) *Queue {
	q := &Queue{
		tokens: append([]string(nil), tokens...),
		prefix: DefaultFlagPrefix,
	}
	q.literalFrom = len(q.tokens)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Count returns the number of unconsumed tokens.
func (q *Queue) Count() int {
	return len(q.tokens)
}

// Dequeue removes and returns the front token.
func (q *Queue) Dequeue() (string, error) {
	if len(q.tokens) == 0 {
		return "", &EmptyQueueError{}
	}
	token := q.tokens[0]
	q.tokens = q.tokens[1:]
	q.consumed++
	return token, nil
}

// NextIsFlag reports whether the front token is flag-shaped. It returns
// false on an empty queue and never consumes anything.
func (q *Queue) NextIsFlag() bool {
	return len(q.tokens) > 0 && q.flagAt(0)
}

// nextIsValue reports whether the front token can be taken as a value.
func (q *Queue) nextIsValue() bool {
	return len(q.tokens) > 0 && !q.flagAt(0)
}

// flagAt classifies the unconsumed token at offset i from the front.
func (q *Queue) flagAt(i int) bool {
	if q.consumed+i >= q.literalFrom {
		return false
	}
	return q.IsFlag(q.tokens[i])
}

// peek returns up to n tokens from the front without consuming them.
func (q *Queue) peek(n int) []string {
	if n > len(q.tokens) {
		n = len(q.tokens)
	}
	return q.tokens[:n]
}

// IsFlag reports whether token starts with one of the queue's flag prefix
// characters.
func (q *Queue) IsFlag(token string) bool {
	if token == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(token)
	return strings.ContainsRune(q.prefix, r)
}

// Remaining returns a copy of the tokens not yet consumed.
func (q *Queue) Remaining() []string {
	return append([]string(nil), q.tokens...)
}
