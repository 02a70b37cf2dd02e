package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-drift/streamwidget/pkg/core"
	swtest "github.com/go-drift/streamwidget/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render the counter headlessly to a PNG",
		Long: `Mount the counter in the widget tester, advance a fake clock by the
given number of ticks, and write the rendered text to a PNG file.

Flags:
  --step N     step (default 1)
  --ticks N    ticks to advance (default 3)`,
		Usage: "streamdemo snapshot <output.png> [--step N] [--ticks N]",
		Run:   runSnapshot,
	})
}

func runSnapshot(env *Env, args []string) error {
	var output string
	step, ticks := 1, 3
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--step", "--ticks":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid %s value %q", args[i], args[i+1])
			}
			if args[i] == "--step" {
				step = n
			} else {
				ticks = n
			}
			i++
		default:
			if output != "" {
				return fmt.Errorf("unexpected argument: %s", args[i])
			}
			output = args[i]
		}
	}
	if output == "" {
		return fmt.Errorf("output path is required\n\nUsage: streamdemo snapshot <output.png>")
	}

	lines, err := renderCounter(env, step, ticks)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer f.Close()
	if err := swtest.RenderTextPNG(f, lines); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	fmt.Fprintf(env.Stdout, "wrote %s\n", output)
	return nil
}

// renderCounter mounts the counter headlessly and returns its text after
// ticks periods.
func renderCounter(env *Env, step, ticks int) ([]string, error) {
	tester := swtest.NewWidgetTester()
	defer tester.Cleanup()

	logger := env.Config.Logger(env.Stderr)
	counter := core.Component(
		counterFunc(tester.Clock(), tester.Scheduler(), time.Second),
		counterWidget,
		env.Config.BridgeOptions(logger)...,
	)
	if err := tester.PumpWidget(counter.New(counterProps{Step: step})); err != nil {
		return nil, err
	}
	for i := 0; i < ticks; i++ {
		tester.Clock().Advance(time.Second)
		if err := tester.Pump(); err != nil {
			return nil, err
		}
	}
	return tester.Texts(), nil
}
