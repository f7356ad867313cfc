package oakton

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/kuanpak/oakton/parsing"
)

type tagModel struct {
	Name string
	Tags []string
}

func (m *tagModel) Arguments(r *parsing.Registry) ([]parsing.Argument, error) {
	name, err := parsing.Scalar(r, "Name", &m.Name)
	if err != nil {
		return nil, err
	}
	tags, err := parsing.Enumerable(r, "Tags", &m.Tags)
	if err != nil {
		return nil, err
	}
	return []parsing.Argument{name, tags}, nil
}

type portModel struct {
	Ports []int
}

func (m *portModel) Arguments(r *parsing.Registry) ([]parsing.Argument, error) {
	ports, err := parsing.Enumerable(r, "Ports", &m.Ports)
	if err != nil {
		return nil, err
	}
	return []parsing.Argument{ports}, nil
}

func newTagCmd(out *bytes.Buffer) (*Cmd, *tagModel, *bool) {
	m := &tagModel{}
	ran := new(bool)
	c := New("tag", func(cmd *Cmd, args []string) error {
		*ran = true
		return nil
	})
	c.Description = "Tag a resource"
	c.Model = m
	c.Output = out
	c.Flags.Bool("verbose", false, "print more")
	return c, m, ran
}

func TestExecArgs_BindsPositionalThenFlags(t *testing.T) {
	var out bytes.Buffer
	c, m, ran := newTagCmd(&out)

	if err := c.ExecArgs([]string{"web", "red", "green", "blue", "--verbose"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !*ran {
		t.Fatalf("expected Run to be called")
	}
	want := &tagModel{Name: "web", Tags: []string{"red", "green", "blue"}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("bound model mismatch (-want +got):\n%s", diff)
	}
	verbose, err := c.Flags.GetBool("verbose")
	if err != nil || !verbose {
		t.Fatalf("expected --verbose to be set, got %v (%v)", verbose, err)
	}
}

type hostModel struct {
	Host string
}

func (m *hostModel) Arguments(r *parsing.Registry) ([]parsing.Argument, error) {
	host, err := parsing.Scalar(r, "Host", &m.Host)
	if err != nil {
		return nil, err
	}
	return []parsing.Argument{host}, nil
}

func TestExecArgs_FlagOrdering(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want *tagModel
	}{
		{name: "flags first", args: []string{"--verbose", "web", "red"}, want: &tagModel{Name: "web", Tags: []string{"red"}}},
		{name: "flags between", args: []string{"web", "--verbose", "red", "green"}, want: &tagModel{Name: "web", Tags: []string{"red", "green"}}},
		{name: "flags last", args: []string{"web", "red", "--verbose"}, want: &tagModel{Name: "web", Tags: []string{"red"}}},
		{name: "dash-led value after terminator", args: []string{"--verbose", "web", "--", "-red", "--blue"}, want: &tagModel{Name: "web", Tags: []string{"-red", "--blue"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			c, m, ran := newTagCmd(&out)

			if err := c.ExecArgs(tc.args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !*ran {
				t.Fatalf("expected Run to be called")
			}
			if diff := cmp.Diff(tc.want, m); diff != "" {
				t.Fatalf("bound model mismatch (-want +got):\n%s", diff)
			}
			if verbose, _ := c.Flags.GetBool("verbose"); !verbose {
				t.Fatalf("expected --verbose to be set")
			}
		})
	}
}

func TestExecArgs_LeftoverPositionalIsAnError(t *testing.T) {
	ran := false
	c := New("ping", func(cmd *Cmd, args []string) error {
		ran = true
		return nil
	})
	c.Model = &hostModel{}
	c.Output = &bytes.Buffer{}
	c.Flags.Bool("verbose", false, "print more")

	err := c.ExecArgs([]string{"db", "--verbose", "stray"})

	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
	var ue *parsing.UnrecognizedArgumentsError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnrecognizedArgumentsError, got %v", err)
	}
	if diff := cmp.Diff([]string{"stray"}, ue.Tokens); diff != "" {
		t.Fatalf("leftover tokens mismatch (-want +got):\n%s", diff)
	}
	if ran {
		t.Fatalf("Run should not be called")
	}
}

func TestExecArgs_DashLedValueWithoutTerminator(t *testing.T) {
	c := New("ping", func(cmd *Cmd, args []string) error { return nil })
	c.Model = &hostModel{}
	c.Output = &bytes.Buffer{}

	var argErr *ArgumentError
	if err := c.ExecArgs([]string{"-db"}); !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError for unknown flag, got %v", err)
	}
}

func TestExecArgs_ConversionError(t *testing.T) {
	c := New("listen", func(cmd *Cmd, args []string) error { return nil })
	c.Model = &portModel{}
	c.Output = &bytes.Buffer{}

	err := c.ExecArgs([]string{"80", "http"})

	var ce *parsing.ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConversionError, got %v", err)
	}
	if ce.Value != "http" || ce.Argument != "Ports" {
		t.Fatalf("unexpected error details: %+v", ce)
	}
}

func TestExecArgs_MissingConverter(t *testing.T) {
	c := New("listen", func(cmd *Cmd, args []string) error { return nil })
	c.Model = &portModel{}
	c.Registry = &parsing.Registry{}
	c.Output = &bytes.Buffer{}

	err := c.ExecArgs([]string{"80"})

	var nc *parsing.NoConverterFoundError
	if !errors.As(err, &nc) {
		t.Fatalf("expected NoConverterFoundError, got %v", err)
	}
}

func TestExecArgs_NoModelPassesArgsToRun(t *testing.T) {
	var got []string
	c := New("echo", func(cmd *Cmd, args []string) error {
		got = args
		return nil
	})
	c.Output = &bytes.Buffer{}

	if err := c.ExecArgs([]string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestExecArgs_Subcommand(t *testing.T) {
	var out bytes.Buffer
	root := New("app", nil)
	root.Output = &out
	sub, m, ran := newTagCmd(&out)
	root.AddCmd(sub)

	if err := root.ExecArgs([]string{"tag", "db", "a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !*ran {
		t.Fatalf("expected subcommand to run")
	}
	if diff := cmp.Diff([]string{"a", "b"}, m.Tags); diff != "" {
		t.Fatalf("bound values mismatch (-want +got):\n%s", diff)
	}
}

func TestExecArgs_NilRunPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	root := New("app", nil)
	root.Description = "An application"
	root.Output = &out

	if err := root.ExecArgs(nil); err == nil {
		t.Fatalf("expected error when no command is given")
	}
	if !strings.Contains(out.String(), "app - An application") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestHelp_PrintsArgumentUsage(t *testing.T) {
	var out bytes.Buffer
	root := New("app", nil)
	root.Output = &out
	sub, _, _ := newTagCmd(&out)
	root.AddCmd(sub)

	if err := root.ExecArgs([]string{"help", "tag"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"tag - Tag a resource",
		"Usage: tag <Name> <tags1 tags2 tags3 ...> [command] [flags]",
		"--verbose",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in help output:\n%s", want, text)
		}
	}
}

func TestHelp_ReportsUnpreparableModel(t *testing.T) {
	var out bytes.Buffer
	root := New("app", nil)
	root.Output = &out
	listen := New("listen", func(cmd *Cmd, args []string) error { return nil })
	listen.Model = &portModel{}
	listen.Registry = &parsing.Registry{}
	root.AddCmd(listen)

	if err := root.ExecArgs([]string{"help", "listen"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Arguments unavailable: no converter registered for type int") {
		t.Fatalf("expected converter error in help output:\n%s", out.String())
	}
	if listen.Output != nil {
		t.Fatalf("printing help should not change the command's output")
	}
}

func TestHelp_UnknownCommand(t *testing.T) {
	root := New("app", nil)
	root.Output = &bytes.Buffer{}

	if err := root.ExecArgs([]string{"help", "nope"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestAddCmd_PanicsOnNamelessCommand(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New("app", nil).AddCmd(&Cmd{})
}
