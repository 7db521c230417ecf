package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lpmorais/dosewatch/pkg/watch"
)

func (a *app) cmdWatch(args []string) int {
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := flags.Int("interval", defaultIntervalSeconds(), "poll interval in seconds")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if *interval <= 0 {
		fmt.Fprintln(os.Stderr, "dw: watch: --interval must be positive")
		return 1
	}

	pollInterval := time.Duration(*interval) * time.Second
	w := watch.New(a.store, notifier(), clockwork.NewRealClock(), pollInterval, os.Stdout, os.Stderr)

	// Handle ctrl-c gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "watching for due doses (poll every %s, ctrl-c to stop)\n", pollInterval)

	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dw: watch: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stderr, "\nstopped")
	return 0
}

// defaultIntervalSeconds reads DOSEWATCH_INTERVAL, defaulting to the
// reference 5-second cadence.
func defaultIntervalSeconds() int {
	v := envOr("DOSEWATCH_INTERVAL", "5")
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
		return 5
	}
	return n
}
