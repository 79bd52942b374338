package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/analysis"
)

// Metrics charted for every benchmarked function, one full-range and one
// large-inputs chart each.
var Metrics = []string{analysis.ColMin, analysis.ColMax, analysis.ColMean, analysis.ColStddev, analysis.ColOps}

// LargeSizeThreshold splits the "full range" charts from the "large inputs
// only" variants.
const LargeSizeThreshold = 1e5

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch

	accelChartWidth  = 14 * vg.Inch
	accelChartHeight = 8 * vg.Inch
)

// WriteCharts renders one full-range and one large-inputs PNG chart per
// metric from the plotting-oriented table, into dir. It returns the paths
// written.
//
// Both axes are logarithmic, except the Y axis of the stddev charts, whose
// values hover near zero.
func WriteCharts(df dataframe.DataFrame, dir string) ([]string, error) {
	var paths []string
	for _, metric := range Metrics {
		for _, largeOnly := range []bool{false, true} {
			path, err := writeMetricChart(df, dir, metric, largeOnly)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeMetricChart(df dataframe.DataFrame, dir, metric string, largeOnly bool) (string, error) {
	variant := "full"
	rangeLabel := "Full Range"
	xLabel := "Input Size"
	if largeOnly {
		variant = "large"
		rangeLabel = "Large Inputs Only"
		xLabel = fmt.Sprintf("Input Size (>%.0g)", float64(LargeSizeThreshold))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs Size (%s)", strings.ToUpper(metric), rangeLabel)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = metric
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	if metric != analysis.ColStddev {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	for _, funcName := range analysis.FunctionNames(df) {
		rows := analysis.FilterByFunc(df, funcName)
		sizes := rows.Col(analysis.ColSize).Float()
		values := rows.Col(metric).Float()
		var xys plotter.XYs
		for ii := range sizes {
			if largeOnly && sizes[ii] <= LargeSizeThreshold {
				continue
			}
			if !chartable(values[ii], metric != analysis.ColStddev) {
				klog.Warningf("Dropping unchartable %s value %v for %q at size %.0f", metric, values[ii], funcName, sizes[ii])
				continue
			}
			xys = append(xys, plotter.XY{X: sizes[ii], Y: values[ii]})
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return "", errors.Wrapf(err, "failed to build %s series for %q", metric, funcName)
		}
		p.Add(line, points)
		p.Legend.Add(funcName, line, points)
	}

	path := filepath.Join(dir, fmt.Sprintf("benchmark_%s_%s.png", metric, variant))
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", errors.Wrapf(err, "failed to save chart %q", path)
	}
	return path, nil
}

// WriteAccelerationChart renders the acceleration series as one log-log PNG
// chart: one line per competitor, plus a dashed reference line at ratio 1
// (equal performance).
func WriteAccelerationChart(series []analysis.AccelerationSeries, dir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Acceleration Relative to Other Libraries"
	p.X.Label.Text = "Input Size"
	p.Y.Label.Text = "Acceleration (baseline / other)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	minSize, maxSize := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		var xys plotter.XYs
		for ii, size := range s.Sizes {
			if !chartable(s.Ratios[ii], true) {
				klog.Warningf("Dropping unchartable ratio %v for %q at size %d", s.Ratios[ii], s.Func, size)
				continue
			}
			xys = append(xys, plotter.XY{X: float64(size), Y: s.Ratios[ii]})
			minSize = math.Min(minSize, float64(size))
			maxSize = math.Max(maxSize, float64(size))
		}
		if len(xys) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return "", errors.Wrapf(err, "failed to build acceleration series for %q", s.Func)
		}
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("%s vs %s", s.Baseline, s.Func), line, points)
	}

	if minSize <= maxSize {
		equal, err := plotter.NewLine(plotter.XYs{{X: minSize, Y: 1}, {X: maxSize, Y: 1}})
		if err != nil {
			return "", errors.Wrap(err, "failed to build the equal-performance reference line")
		}
		equal.LineStyle.Color = color.Black
		equal.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(equal)
		p.Legend.Add("Equal Performance (x1)", equal)
	}

	path := filepath.Join(dir, "benchmark_acceleration_large.png")
	if err := p.Save(accelChartWidth, accelChartHeight, path); err != nil {
		return "", errors.Wrapf(err, "failed to save acceleration chart %q", path)
	}
	return path, nil
}

// chartable reports whether a value can be placed on the chart: finite
// always, and strictly positive when the axis is logarithmic.
func chartable(v float64, logScale bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !logScale || v > 0
}
