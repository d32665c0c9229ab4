package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether diagnostics and timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where diagnostics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// Reportf prints a diagnostic line to Output when Verbose is set.
func Reportf(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintf(Output, format, args...)
}

// TimingStats holds timing information for different operations
type TimingStats struct {
	TotalTime     time.Duration
	BuildTime     time.Duration
	InitTime      time.Duration
	ForwardTime   time.Duration
	HEInitTime    time.Duration
	EncryptedTime time.Duration
	CostTime      time.Duration
}

func percent(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PrintTimingStats prints timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Build: %v (%.1f%%)\n", stats.BuildTime, percent(stats.BuildTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Weight init: %v (%.1f%%)\n", stats.InitTime, percent(stats.InitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Forward pass: %v (%.1f%%)\n", stats.ForwardTime, percent(stats.ForwardTime, stats.TotalTime))
	fmt.Fprintf(Output, "  HE initialization: %v (%.1f%%)\n", stats.HEInitTime, percent(stats.HEInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Encrypted connection: %v (%.1f%%)\n", stats.EncryptedTime, percent(stats.EncryptedTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Cost derivative: %v (%.1f%%)\n", stats.CostTime, percent(stats.CostTime, stats.TotalTime))
	fmt.Fprintf(Output, "\nCost derivative: %.3fµs\n", DurationUS(stats.CostTime))
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
