// Package harness executes the softmax performance probes: it times every
// registered implementation over a sweep of synthetic input sizes and
// writes one result file per (function, size) pair, all sharing a run
// stamp, in the format the report pipeline ingests.
package harness

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/benchmarks"
	"github.com/worktif/purem-benchmarks/softmax"
)

// ArraySizeEnv overrides the size sweep with a single synthetic input size.
const ArraySizeEnv = "ARRAY_SIZE"

// PlatformToken derives the per-platform results subdirectory name for the
// current machine, e.g. "Linux-go1.24.5-64bit". Both the harness and the
// report command derive it the same way, so they agree without
// configuration.
func PlatformToken() string {
	osName := runtime.GOOS
	if osName != "" {
		osName = strings.ToUpper(osName[:1]) + osName[1:]
	}
	return fmt.Sprintf("%s-%s-%dbit", osName, runtime.Version(), strconv.IntSize)
}

// DefaultSizes is the synthetic input size sweep probed when neither the
// -sizes flag nor the ARRAY_SIZE environment variable narrows it.
var DefaultSizes = []int{1_000, 5_000, 10_000, 50_000, 100_000, 200_000, 500_000, 1_000_000}

// Options configure one harness run.
type Options struct {
	// Dir receives the result files.
	Dir string

	// Sizes probed for every function. Defaults to DefaultSizes, overridden
	// by the ARRAY_SIZE environment variable when set.
	Sizes []int

	// Rounds of timed measurement per probe (default 20) and Warmup rounds
	// discarded before measuring (default 3).
	Rounds int
	Warmup int

	// MinRoundTime is the calibration target: iterations per round are
	// doubled until one round takes at least this long (default 10ms).
	MinRoundTime time.Duration

	// TestNumber of the first probe; subsequent functions get consecutive
	// identifiers. Defaults to 1.
	TestNumber int

	// OnProbe, if set, is called after each (function, size) probe
	// completes. Used for progress display.
	OnProbe func(funcName string, size int)
}

func (o *Options) setDefaults() error {
	if o.Dir == "" {
		return errors.New("harness options need an output directory")
	}
	if len(o.Sizes) == 0 {
		o.Sizes = DefaultSizes
	}
	if override, err := sizeFromEnv(); err != nil {
		return err
	} else if override > 0 {
		o.Sizes = []int{override}
	}
	if o.Rounds <= 0 {
		o.Rounds = 20
	}
	if o.Warmup < 0 {
		o.Warmup = 0
	} else if o.Warmup == 0 {
		o.Warmup = 3
	}
	if o.MinRoundTime <= 0 {
		o.MinRoundTime = 10 * time.Millisecond
	}
	if o.TestNumber <= 0 {
		o.TestNumber = 1
	}
	return nil
}

func sizeFromEnv() (int, error) {
	value := strings.TrimSpace(os.Getenv(ArraySizeEnv))
	if value == "" {
		return 0, nil
	}
	size, err := strconv.Atoi(strings.ReplaceAll(value, "_", ""))
	if err != nil || size <= 0 {
		return 0, errors.Errorf("invalid %s=%q, expected a positive integer", ArraySizeEnv, value)
	}
	return size, nil
}

// Run probes every function over every size and writes the result files.
// It returns the shared run stamp and the paths written.
//
// A probe that panics (softmax implementations panic on invalid input or
// internal tensor errors) aborts the run with an error instead of
// unwinding through the harness.
func Run(opts Options, functions []softmax.Function) (stamp string, paths []string, err error) {
	if err = opts.setDefaults(); err != nil {
		return "", nil, err
	}
	if len(functions) == 0 {
		return "", nil, errors.New("no functions to probe")
	}

	stamp = benchmarks.NewStamp()
	machine := benchmarks.CurrentMachineInfo()
	klog.V(1).Infof("Harness run %s: %d functions x %d sizes, %d rounds each",
		stamp, len(functions), len(opts.Sizes), opts.Rounds)

	for fi, function := range functions {
		testNumber := opts.TestNumber + fi
		probeName := probeSlug(function.Name)
		for _, size := range opts.Sizes {
			input := generateNumbers(size)
			output := make([]float64, size)
			var stats benchmarks.Stats
			probeErr := exceptions.TryCatch[error](func() {
				stats = Measure(func() { function.Compute(output, input) },
					opts.Rounds, opts.Warmup, opts.MinRoundTime)
			})
			if probeErr != nil {
				return "", nil, errors.WithMessagef(probeErr, "probe %q at size %d", function.Name, size)
			}

			path, writeErr := benchmarks.WriteResultFile(
				opts.Dir, testNumber, probeName, stamp, size, function.Name, stats, machine)
			if writeErr != nil {
				return "", nil, writeErr
			}
			paths = append(paths, path)
			if opts.OnProbe != nil {
				opts.OnProbe(function.Name, size)
			}
		}
	}
	return stamp, paths, nil
}

// Measure times fn: warmup rounds are run and discarded, then `rounds`
// timed rounds of a calibrated number of iterations each. The statistics
// are per-operation, in seconds, matching how the result files report them.
func Measure(fn func(), rounds, warmup int, minRoundTime time.Duration) benchmarks.Stats {
	// Calibrate iterations per round.
	iterations := 1
	for {
		start := time.Now()
		for ii := 0; ii < iterations; ii++ {
			fn()
		}
		if time.Since(start) >= minRoundTime || iterations >= 1<<20 {
			break
		}
		iterations *= 2
	}

	for ii := 0; ii < warmup; ii++ {
		runRound(fn, iterations)
	}

	perOp := make([]float64, rounds)
	for ii := range perOp {
		perOp[ii] = runRound(fn, iterations).Seconds() / float64(iterations)
	}

	mean := stat.Mean(perOp, nil)
	stddev := 0.0
	if rounds > 1 {
		stddev = stat.StdDev(perOp, nil)
	}
	return benchmarks.Stats{
		Min:    floats.Min(perOp),
		Max:    floats.Max(perOp),
		Mean:   mean,
		Stddev: stddev,
		Ops:    1 / mean,
		Rounds: rounds,
	}
}

func runRound(fn func(), iterations int) time.Duration {
	start := time.Now()
	for ii := 0; ii < iterations; ii++ {
		fn()
	}
	return time.Since(start)
}

// generateNumbers builds the synthetic input: uniform random values in
// [0, 1), the same distribution for every probed function.
func generateNumbers(size int) []float64 {
	numbers := make([]float64, size)
	for ii := range numbers {
		numbers[ii] = rand.Float64()
	}
	return numbers
}

// probeSlug derives the underscore-free file name token from a function
// display name, e.g. "Softmax: Purem" -> "softmax-purem".
func probeSlug(funcName string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(funcName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
