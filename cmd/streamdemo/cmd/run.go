package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-drift/streamwidget/pkg/bridge"
	"github.com/go-drift/streamwidget/pkg/errors"
	"github.com/go-drift/streamwidget/pkg/stream"
	"github.com/go-drift/streamwidget/pkg/teahost"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the counter in the terminal",
		Long: `Run the ticking counter in a Bubble Tea program.

Keys:
  + / up     increase the step
  - / down   decrease the step
  q          quit

Flags:
  --step N        initial step (default 1)
  --period DUR    tick period (default 1s)`,
		Usage: "streamdemo run [--step N] [--period DUR]",
		Run:   runCounter,
	})
}

type runOptions struct {
	step   int
	period time.Duration
}

func parseRunArgs(args []string) (runOptions, error) {
	opts := runOptions{step: 1, period: time.Second}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var value string
		name := arg
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			name, value = arg[:eq], arg[eq+1:]
		} else if i+1 < len(args) && (arg == "--step" || arg == "--period") {
			value = args[i+1]
			i++
		}
		switch name {
		case "--step":
			step, err := parseStep(value)
			if err != nil {
				return opts, err
			}
			opts.step = step
		case "--period":
			period, err := time.ParseDuration(value)
			if err != nil || period <= 0 {
				return opts, fmt.Errorf("invalid period %q", value)
			}
			opts.period = period
		default:
			return opts, fmt.Errorf("unknown flag: %s", arg)
		}
	}
	return opts, nil
}

func runCounter(env *Env, args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}

	logFile, err := os.CreateTemp("", "streamdemo-*.log")
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()
	logger := env.Config.Logger(logFile)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: env.Config.Mode == bridge.Development})
	defer errors.SetHandler(nil)

	sched := teahost.NewScheduler()
	factory := bridge.New(
		counterFunc(stream.SystemClock, sched, opts.period),
		counterText,
		append(env.Config.BridgeOptions(logger), bridge.WithName("Counter"))...,
	)
	model := teahost.NewModel(factory, counterProps{Step: opts.step},
		teahost.WithScheduler[counterProps](sched),
		teahost.WithReducer(stepKeys),
		teahost.WithTitle[counterProps](env.Config.AppName),
		teahost.WithLogger[counterProps](logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := teahost.Run(ctx, model); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "logs written to %s\n", logFile.Name())
	return nil
}
