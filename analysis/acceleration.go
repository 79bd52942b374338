package analysis

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/support/sets"
)

// DefaultBaselineMarker identifies the reference implementation when the
// caller does not pass one explicitly.
const DefaultBaselineMarker = "Purem"

// Smoothing filter parameters: a degree-2 local polynomial over 5 points.
// Series shorter than the window stay unsmoothed.
const (
	smoothingWindow = 5
	smoothingDegree = 2
)

// AccelerationSeries is the relative performance of the baseline against one
// competitor function: ratio[i] = baselineOps(size[i]) / competitorOps(size[i])
// for every input size covered by both, sorted ascending. Smoothing only
// adjusts the ratio values, never the set or order of sizes.
type AccelerationSeries struct {
	// Baseline and Func are the two function names being compared.
	Baseline string
	Func     string

	// Sizes covered by both functions, ascending.
	Sizes []int

	// Ratios, aligned with Sizes, after smoothing (when applied).
	Ratios []float64

	// Smoothed tells whether the smoothing filter was applied.
	Smoothed bool
}

// Acceleration computes one AccelerationSeries per competitor function in
// the plotting-oriented table.
//
// The reference series is an explicit parameter: baselineMarker is matched
// as a substring against the table's function names, and the computation
// fails before any ratio if no function matches. Competitors sharing no
// input size with the baseline are skipped. A failure to smooth a series is
// not fatal: the raw ratios are kept and a warning is logged.
//
// Ratios are plain floating-point division: a competitor with zero reported
// throughput yields +Inf, which is kept in the series (and disables
// smoothing for that series, since the fit cannot absorb it).
func Acceleration(df dataframe.DataFrame, baselineMarker string) ([]AccelerationSeries, error) {
	if baselineMarker == "" {
		baselineMarker = DefaultBaselineMarker
	}
	names := FunctionNames(df)
	baseline := ""
	for _, name := range names {
		if strings.Contains(name, baselineMarker) {
			baseline = name
			break
		}
	}
	if baseline == "" {
		return nil, errors.Errorf("no function matching the baseline marker %q in the benchmark table (functions: %v)",
			baselineMarker, names)
	}

	baselineOps := opsBySize(df, baseline)
	baselineSizes := sets.Make[int](len(baselineOps))
	for size := range baselineOps {
		baselineSizes.Insert(size)
	}

	var result []AccelerationSeries
	for _, name := range names {
		if name == baseline {
			continue
		}
		competitorOps := opsBySize(df, name)
		competitorSizes := sets.Make[int](len(competitorOps))
		for size := range competitorOps {
			competitorSizes.Insert(size)
		}
		common := sets.Sorted(baselineSizes.Intersect(competitorSizes))
		if len(common) == 0 {
			klog.V(1).Infof("Function %q shares no input sizes with baseline %q, skipped", name, baseline)
			continue
		}

		ratios := make([]float64, len(common))
		for ii, size := range common {
			ratios[ii] = baselineOps[size] / competitorOps[size]
		}

		series := AccelerationSeries{Baseline: baseline, Func: name, Sizes: common, Ratios: ratios}
		if len(ratios) >= smoothingWindow {
			smoothed, err := SavGol(ratios, smoothingWindow, smoothingDegree)
			if err != nil {
				klog.Warningf("Smoothing skipped for %q vs %q: %v", baseline, name, err)
			} else {
				series.Ratios = smoothed
				series.Smoothed = true
			}
		}
		result = append(result, series)
	}
	return result, nil
}

// opsBySize indexes the throughput of one function by input size. The
// (size, func) pair is expected to be unique within a run; if a duplicate
// appears, the last row wins.
func opsBySize(df dataframe.DataFrame, funcName string) map[int]float64 {
	rows := FilterByFunc(df, funcName)
	sizes := rows.Col(ColSize).Float()
	ops := rows.Col(ColOps).Float()
	bySize := make(map[int]float64, len(sizes))
	for ii := range sizes {
		bySize[int(sizes[ii])] = ops[ii]
	}
	return bySize
}
