// Package commands implements CLI command handlers for oopstrace.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/resserops/oopstrace/pkg/trace"
)

// hotPathThreshold is the share of root interval above which a report row
// is highlighted as a hot path.
const hotPathThreshold = 20.0

// NewDemoCommand returns the demo command: a fixed, self-contained trace
// scenario (top-level steps FuncA/FuncB/FuncC, with FuncB itself a scope
// containing nested steps FuncD/FuncE/FuncF) that exercises scopes nested
// inside a function boundary, memory sampling, and report rendering end to
// end.
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a fixed trace scenario and print its report",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDemo(trace.Root(context.Background()))
		},
	}
}

// runDemo drives the fixed scenario to completion and returns the first
// scope/trace mismatch any step reports: a mismatch is a failure condition
// (see pkg/trace's MismatchError), not something to run past silently.
func runDemo(ctx context.Context) error {
	ctx, end := trace.Scope(ctx, trace.INFO)
	defer end()

	time.Sleep(10 * time.Millisecond)
	if err := trace.Point(ctx, "FuncA", trace.WithMemory()); err != nil {
		return fmt.Errorf("FuncA: %w", err)
	}

	if err := demoFuncB(ctx); err != nil {
		return err
	}

	if err := trace.Point(ctx, "FuncB", trace.WithMemory()); err != nil {
		return fmt.Errorf("FuncB: %w", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := trace.Point(ctx, "FuncC", trace.WithMemory()); err != nil {
		return fmt.Errorf("FuncC: %w", err)
	}

	printDemoReport(ctx)

	return nil
}

func printDemoReport(ctx context.Context) {
	rt, ok := trace.Table(ctx)
	if !ok {
		return
	}

	trace.Render(os.Stdout, rt)

	for _, r := range rt.Records {
		if r.Percent >= hotPathThreshold {
			fmt.Println(color.RedString("hot path: %s (%.1f%%)", r.Location.Label, r.Percent))
		}
	}

	fmt.Printf("profiled for %s across %s nodes\n",
		rt.RootInterval, humanize.Comma(int64(len(rt.Records))))
}

func demoFuncB(ctx context.Context) error {
	ctx, end := trace.Scope(ctx, trace.INFO)
	defer end()

	time.Sleep(10 * time.Millisecond)
	if err := trace.Point(ctx, "FuncD"); err != nil {
		return fmt.Errorf("FuncD: %w", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := trace.Point(ctx, "FuncE"); err != nil {
		return fmt.Errorf("FuncE: %w", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := trace.Point(ctx, "FuncF"); err != nil {
		return fmt.Errorf("FuncF: %w", err)
	}

	return nil
}
