package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/cell"
	"github.com/AnatoleLucet/cell/scope"
)

type scenario func(w io.Writer, opts ...cell.Option) error

var scenarios = map[string]scenario{
	"counter": counterDemo,
	"diamond": diamondDemo,
	"bridge":  bridgeDemo,
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "demo [" + strings.Join(scenarioNames(), "|") + "]",
		Short:     "Run a scenario and print what the watchers see",
		Args:      cobra.ExactArgs(1),
		ValidArgs: scenarioNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := scenarios[args[0]]
			if !ok {
				return fmt.Errorf("unknown scenario %q, want one of %s", args[0], strings.Join(scenarioNames(), ", "))
			}

			return runScoped(cmd.OutOrStdout(), run)
		},
	}

	return cmd
}

// runScoped runs a scenario inside its own scope, disposed once it returns.
func runScoped(w io.Writer, run scenario, opts ...cell.Option) error {
	s := scope.New()
	defer s.Dispose()

	return run(w, append(opts, cell.WithScope(s))...)
}

func counterDemo(w io.Writer, opts ...cell.Option) error {
	count := cell.NewValue(0, opts...)
	double := cell.NewComputed(func() int { return count.Read() * 2 }, opts...)

	cell.Watch(count, func(c int) {
		fmt.Fprintf(w, "count=%d double=%d\n", c, double.Read())
	}, opts...)

	for i := 1; i <= 3; i++ {
		count.Write(i)
	}

	return nil
}

// diamondDemo shows that a shared source reaches the bottom cell through both branches.
func diamondDemo(w io.Writer, opts ...cell.Option) error {
	a := cell.NewValue(1, opts...)
	b := cell.NewComputed(func() int { return a.Read() + 1 }, opts...)
	c := cell.NewComputed(func() int { return a.Read() * 2 }, opts...)
	d := cell.NewComputed(func() int { return b.Read() + c.Read() }, opts...)

	calls := 0
	cell.Watch(d, func(v int) {
		calls++
		fmt.Fprintf(w, "d=%d\n", v)
	}, opts...)

	for i := 2; i <= 3; i++ {
		fmt.Fprintf(w, "a=%d\n", i)
		a.Write(i)
	}

	fmt.Fprintf(w, "watch calls: %d\n", calls)
	return nil
}

func bridgeDemo(w io.Writer, opts ...cell.Option) error {
	name := cell.NewValue("world", opts...)

	out, stop := cell.AsStream[string](name, opts...)
	defer stop()

	greeting := cell.FromStream(out, "", opts...)
	cell.Watch(greeting, func(v string) {
		fmt.Fprintf(w, "hello %s\n", v)
	}, opts...)

	name.Write("cells")
	name.Write("streams")

	fmt.Fprintf(w, "last: %s\n", greeting.Read())
	return nil
}
