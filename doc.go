// Package oakton provides a lightweight means of constructing command-line
// interfaces whose positional arguments are bound onto typed command
// models.
//
// A Cmd owns a pflag.FlagSet for its named flags and, optionally, a
// parsing.Model describing its positional arguments. When the command is
// executed the flags are parsed first, wherever they appear, and the
// positional arguments that remain are bound onto the model. Values after a
// "--" terminator are bound as given, even when they start with a dash. See
// package parsing for the binding rules.
package oakton
