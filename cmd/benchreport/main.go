// benchreport generates the benchmarking report for one harness run: it
// locates the run's result files by probe identifier, aggregates their
// records, renders the per-metric and acceleration charts and writes the
// Markdown table report into a fresh timestamp-named output directory.
//
// Usage: benchreport [flags] <test_number>
//
// The test number is the probe identifier of any probe of the run (any of
// them resolves the same run stamp).
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/analysis"
	"github.com/worktif/purem-benchmarks/benchmarks"
	"github.com/worktif/purem-benchmarks/harness"
	"github.com/worktif/purem-benchmarks/report"
)

var (
	flagBenchmarksDir = flag.String("benchmarks_dir", ".benchmarks",
		"Root directory holding the per-platform benchmark result directories.")
	flagPlatform = flag.String("platform", harness.PlatformToken(),
		"Platform subdirectory under -benchmarks_dir to read result files from. "+
			"Defaults to the current platform's token, so reports read the results "+
			"the local harness wrote.")
	flagOut = flag.String("out", "purem_benchmarks",
		"Directory under which the timestamp-named output directory is created.")
	flagBaseline = flag.String("baseline", analysis.DefaultBaselineMarker,
		"Marker identifying the reference implementation: the first function whose "+
			"name contains it becomes the acceleration baseline.")
	flagHTML = flag.Bool("html", false,
		"Also write an interactive HTML version of the charts.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing test number to report on. See 'benchreport -help'.")
		os.Exit(1)
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'benchreport -help'.")
		os.Exit(1)
	}
	testNumber, err := strconv.Atoi(args[0])
	if err != nil || testNumber < 0 {
		klog.Errorf("Test number must be a non-negative integer, got %q.", args[0])
		os.Exit(1)
	}
	run(testNumber)
}

var (
	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func run(testNumber int) {
	resultsDir := path.Join(*flagBenchmarksDir, *flagPlatform)
	files := must.M1(benchmarks.Locate(resultsDir, testNumber))
	records := must.M1(benchmarks.ExtractAll(files))

	df := must.M1(analysis.AggregateTable(records))
	reportDf := must.M1(analysis.ReportTable(df))
	accel := must.M1(analysis.Acceleration(df, *flagBaseline))

	outDir := must.M1(report.NewOutputDir(*flagOut))
	chartPaths := must.M1(report.WriteCharts(df, outDir))
	accelPath := must.M1(report.WriteAccelerationChart(accel, outDir))
	markdownPath := must.M1(report.WriteMarkdown(reportDf, outDir))
	htmlPath := ""
	if *flagHTML {
		htmlPath = must.M1(report.WriteHTML(df, accel, outDir))
	}

	fmt.Println(titleStyle.Render("Benchmark Report"))
	table := newPlainTable()
	table.Row("results dir", resultsDir)
	table.Row("run stamp", files[0].Stamp)
	table.Row("# result files", humanize.Comma(int64(len(files))))
	table.Row("# records", humanize.Comma(int64(len(records))))
	table.Row("# functions", humanize.Comma(int64(len(analysis.FunctionNames(df)))))
	table.Row("baseline marker", *flagBaseline)
	table.Row("output dir", outDir)
	table.Row("# charts", humanize.Comma(int64(len(chartPaths)+1)))
	table.Row("acceleration chart", path.Base(accelPath))
	table.Row("markdown report", path.Base(markdownPath))
	if htmlPath != "" {
		table.Row("html report", path.Base(htmlPath))
	}
	fmt.Println(table.Render())
}
