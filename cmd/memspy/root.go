package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/mem"
)

var (
	// Global flags
	count       int
	levelName   string
	withMetrics bool

	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *mem.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "memspy",
	Short: "Trace allocator traffic of the mem containers",
	Long: `memspy runs a fixed scenario against one container type backed by a
spying allocator and prints every allocate, deallocate, construct and destroy
call followed by a summary.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: dumpMetrics,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&count, "n", 10, "Number of elements the scenario works with")
	rootCmd.PersistentFlags().StringVar(&levelName, "log-level", "warn", "Allocator log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&withMetrics, "metrics", false, "Record prometheus metrics and print them at the end")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if count < 0 {
		return fmt.Errorf("--n must not be negative, got %d", count)
	}
	zerolog.SetGlobalLevel(logLevel(levelName))
	logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		With().Timestamp().Str("scenario", cmd.Name()).Logger()

	registry, metrics = nil, nil
	if !withMetrics {
		return nil
	}
	registry = prometheus.NewRegistry()
	m, err := mem.NewMetrics(registry, "memspy")
	if err != nil {
		return err
	}
	metrics = m
	return nil
}

func logLevel(l string) zerolog.Level {
	switch strings.ToLower(l) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func dumpMetrics(cmd *cobra.Command, _ []string) error {
	if registry == nil {
		return nil
	}
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n# metrics")
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}

// spyOn builds the allocator chain for one scenario: heap, optionally
// instrumented, logged, and finally spied with tracing on.
func spyOn[T any]() *mem.Spy[T] {
	var a mem.Allocator[T] = mem.Heap[T]()
	if metrics != nil {
		a = mem.Instrumented(a, metrics)
	}
	a = mem.Logged(a, logger)
	spy := mem.NewSpy(a)
	spy.Trace(true)
	return spy
}

// report prints the events recorded since the last report and resets the
// spy's counters.
func report[T any](w io.Writer, step string, spy *mem.Spy[T]) {
	events := spy.Events()
	calls := make([]string, len(events))
	for i, e := range events {
		calls[i] = e.String()
	}
	st := spy.Stats()
	fmt.Fprintf(w, "%s\n", step)
	if len(calls) > 0 {
		fmt.Fprintf(w, "  calls: %s\n", strings.Join(calls, " "))
	}
	fmt.Fprintf(w, "  alloc=%d dealloc=%d construct=%d destroy=%d failed=%d live=%d peak=%d\n",
		st.Allocations, st.Deallocations, st.Constructs, st.Destroys, st.Failures,
		st.LiveSlots, st.PeakSlots)
	spy.Reset()
	spy.Trace(true)
}
