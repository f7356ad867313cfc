// Package parsing binds raw command-line tokens onto the typed fields of a
// command model.
//
// A Binder walks the arguments a Model declares, in declaration order, and
// offers each of them the shared Queue of tokens. A ScalarArgument takes a
// single token. An EnumerableArgument is greedy but flag-bounded: it claims
// every plain token up to, but not including, the first flag-shaped token
// or the end of input.
//
// Conversion from text to the target type is looked up in a Registry when
// an argument is constructed, so a missing converter is reported when the
// model is prepared rather than half way through binding.
package parsing
