// benchrun executes the softmax performance probes and writes their result
// files, one per (function, size) pair, into the platform's results
// directory. The files it writes are what benchreport ingests.
//
// The ARRAY_SIZE environment variable overrides the size sweep with a
// single synthetic input size.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/harness"
	"github.com/worktif/purem-benchmarks/softmax"
)

var (
	flagBenchmarksDir = flag.String("benchmarks_dir", ".benchmarks",
		"Root directory holding the per-platform benchmark result directories.")
	flagPlatform = flag.String("platform", harness.PlatformToken(),
		"Platform subdirectory under -benchmarks_dir to write result files to.")
	flagSizes = flag.String("sizes", "",
		"Comma-separated list of input sizes to probe. Defaults to the standard "+
			"sweep; the "+harness.ArraySizeEnv+" environment variable takes precedence.")
	flagRounds     = flag.Int("rounds", 20, "Timed measurement rounds per probe.")
	flagWarmup     = flag.Int("warmup", 3, "Warmup rounds discarded before measuring.")
	flagTestNumber = flag.Int("test_number", 1,
		"Probe identifier assigned to the first function; the rest get consecutive numbers.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %v. See 'benchrun -help'.", flag.Args())
		os.Exit(1)
	}

	sizes, err := parseSizes(*flagSizes)
	if err != nil {
		klog.Errorf("Invalid -sizes: %v", err)
		os.Exit(1)
	}

	functions := softmax.Functions()
	numSizes := len(sizes)
	if numSizes == 0 {
		numSizes = len(harness.DefaultSizes)
	}
	if os.Getenv(harness.ArraySizeEnv) != "" {
		numSizes = 1
	}
	bar := progressbar.NewOptions(len(functions)*numSizes,
		progressbar.OptionSetDescription("Probing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
	)

	opts := harness.Options{
		Dir:        path.Join(*flagBenchmarksDir, *flagPlatform),
		Sizes:      sizes,
		Rounds:     *flagRounds,
		Warmup:     *flagWarmup,
		TestNumber: *flagTestNumber,
		OnProbe: func(funcName string, size int) {
			_ = bar.Add(1)
			klog.V(1).Infof("Probed %q at size %d", funcName, size)
		},
	}
	stamp, paths, err := harness.Run(opts, functions)
	if err != nil {
		klog.Exitf("Harness run failed: %+v", err)
	}
	_ = bar.Finish()
	fmt.Printf("\nRun %s: wrote %d result files to %s\n", stamp, len(paths), opts.Dir)
}

func parseSizes(list string) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	var sizes []int
	for _, token := range strings.Split(list, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("%q is not a positive integer", token)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
