package oakton

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/kuanpak/oakton/parsing"
)

// RunFunc defines the arity and return signatures of a function that a Cmd
// will run. args holds the positional arguments when the Cmd has no Model.
type RunFunc func(cmd *Cmd, args []string) error

// Cmd defines the structure of a command that can be run.
type Cmd struct {
	// The name of the command.
	Name string

	// A brief, single line description of the command.
	Description string

	// A *pflag.FlagSet for registering command-line flags for the command.
	Flags *pflag.FlagSet

	// Model receives the positional arguments. When nil, positional
	// arguments are handed to Run as is.
	Model parsing.Model

	// Registry holds the converters used to bind Model. Subcommands
	// without a registry inherit their parent's; parsing.NewRegistry() is
	// used when none is set.
	Registry *parsing.Registry

	// Will be nil unless subcommands are registered with the AddCmd()
	// method.
	Commands map[string]*Cmd

	// The function to run.
	Run RunFunc

	// Output receives usage and help text. Defaults to os.Stderr.
	Output io.Writer
}

// ArgumentError wraps any failure to bind or parse the command line of the
// named command.
type ArgumentError struct {
	Cmd string
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func (e *ArgumentError) Cause() error { return e.Err }

func (c *Cmd) output() io.Writer {
	if c.Output == nil {
		return os.Stderr
	}
	return c.Output
}

func (c *Cmd) registry() *parsing.Registry {
	if c.Registry == nil {
		c.Registry = parsing.NewRegistry()
	}
	return c.Registry
}

func (c *Cmd) flags() *pflag.FlagSet {
	if c.Flags == nil {
		c.Flags = pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
		c.Flags.Usage = newUsage(c)
	}
	c.Flags.SetOutput(c.output())
	return c.Flags
}

// usageLine renders "name <arg> ... [flags]". A model that cannot be
// prepared is left out of the line and its error is returned.
func (c *Cmd) usageLine() (string, error) {
	parts := []string{c.Name}
	var prepErr error
	if c.Model != nil {
		b, err := parsing.Prepare(c.Model, c.registry())
		switch {
		case err != nil:
			prepErr = err
		case len(b.Arguments()) > 0:
			parts = append(parts, b.Usage())
		}
	}
	if c.Commands != nil {
		parts = append(parts, "[command]")
	}
	parts = append(parts, "[flags]")
	return strings.Join(parts, " "), prepErr
}

// printUsage writes the help message for c to w.
func printUsage(c *Cmd, w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n", c.Name, c.Description)
	line, err := c.usageLine()
	fmt.Fprintf(w, "\nUsage: %s\n", line)
	if err != nil {
		fmt.Fprintf(w, "\nArguments unavailable: %v\n", err)
	}
	printSubcommands(c, w)
	if c.Flags != nil && c.Flags.HasFlags() {
		fmt.Fprintln(w, "\nFlags")
		fmt.Fprint(w, c.Flags.FlagUsages())
	}
}

func newUsage(c *Cmd) func() {
	return func() {
		printUsage(c, c.output())
	}
}

// newHelpCmd is called by New() to add a "help" subcommand to parent.
func newHelpCmd(parent *Cmd) *Cmd {
	descr := fmt.Sprintf("Print the help message for %s or a subcommand", parent.Name)
	return &Cmd{
		Name:        "help",
		Description: descr,
		Run: func(cmd *Cmd, args []string) error {
			// The command to print the help message for.
			var pp *Cmd

			if len(args) == 0 || parent.Commands == nil {
				// Either "cmd help", or "cmd help foo" where cmd
				// has no registered subcommands.
				pp = parent
			} else if sub, ok := parent.Commands[args[0]]; ok {
				pp = sub
			}

			if pp == nil {
				return errors.Errorf("no such command: %q", args[0])
			}

			w := pp.Output
			if w == nil {
				w = cmd.output()
			}
			printUsage(pp, w)
			return nil
		},
	}
}

// printSubcommands is a helper function, used when printing usage; it
// prints all of the registered subcommands of c, if any, to w.
func printSubcommands(c *Cmd, w io.Writer) {
	if c.Commands == nil {
		return
	}

	fmt.Fprintln(w, "\nCommands")

	// Sorted for consistent output.
	subNames := make([]string, 0, len(c.Commands))
	for name := range c.Commands {
		subNames = append(subNames, name)
	}
	sort.Strings(subNames)

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	defer tw.Flush()
	for _, name := range subNames {
		fmt.Fprintf(tw, "\t\t%s\t%s\n", name, c.Commands[name].Description)
	}
}

// New is a convenience function for creating and returning a new *Cmd.
//
// New will automatically add a "help" subcommand that, when called with no
// arguments, will print the help message for its parent command. If any
// arguments are provided to the "help" subcommand, only the first argument
// will be consulted, and it will print the help message for the specified
// subcommand.
func New(name string, run RunFunc) *Cmd {
	c := &Cmd{
		Name: name,
		Run:  run,
	}
	c.flags()
	c.AddCmd(newHelpCmd(c))
	return c
}

// AddCmd registers a subcommand.
//
// AddCmd will panic if the given cmd's Name field is an empty string.
// If there is a subcommand already registered with the same name, it will be
// replaced.
func (c *Cmd) AddCmd(cmd *Cmd) {
	if c.Commands == nil {
		c.Commands = make(map[string]*Cmd)
	}
	if cmd.Name == "" {
		panic("cannot add nameless subcommand")
	}
	c.Commands[cmd.Name] = cmd
}

// Exec parses the arguments provided on the command line and runs the
// selected command. This is the method that should be called from the
// outer-most command (e.g. the "root" command).
//
// Errors are printed to Output. Exec exits with status 2 when the command
// line could not be bound, and 1 when the command itself failed.
func (c *Cmd) Exec() {
	err := c.ExecArgs(os.Args[1:])
	if err == nil {
		return
	}

	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		fmt.Fprintln(c.output(), "error parsing arguments:", err)
		os.Exit(2)
	}
	fmt.Fprintln(c.output(), "error:", err)
	os.Exit(1)
}

// ExecArgs executes the command selected by args.
//
// When the first argument names a registered subcommand, the subcommand
// is executed with the rest of the arguments. Otherwise args are parsed as
// flags, which may appear anywhere, and the positional arguments are bound
// onto c.Model before c.Run is called. Positional arguments left over once
// the model is bound are reported as a *parsing.UnrecognizedArgumentsError.
//
// If c.Run is nil, the usage message is printed and an error is returned.
func (c *Cmd) ExecArgs(args []string) error {
	if c.Commands != nil && len(args) > 0 {
		if sub, ok := c.Commands[args[0]]; ok {
			if sub.Registry == nil {
				sub.Registry = c.Registry
			}
			if sub.Output == nil {
				sub.Output = c.Output
			}
			return sub.ExecArgs(args[1:])
		}
	}

	fs := c.flags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &ArgumentError{Cmd: c.Name, Err: err}
	}

	positional := fs.Args()
	if c.Model != nil {
		b, err := parsing.Prepare(c.Model, c.registry())
		if err != nil {
			return errors.Wrapf(err, "preparing %s", c.Name)
		}
		// Values after "--" are bound as given, even when dash-led.
		if err := b.BindAll(positional, parsing.WithLiteralFrom(fs.ArgsLenAtDash())); err != nil {
			return &ArgumentError{Cmd: c.Name, Err: err}
		}
		positional = nil
	}

	if c.Run == nil {
		fs.Usage()
		return errors.Errorf("%s: no command given", c.Name)
	}
	return c.Run(c, positional)
}
