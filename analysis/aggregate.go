// Package analysis turns raw benchmark records into the tables and derived
// series the report emitters consume: a plotting-oriented table, a
// report-oriented table, and smoothed acceleration series comparing the
// baseline implementation against its competitors.
package analysis

import (
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/worktif/purem-benchmarks/benchmarks"
)

// Column names of the plotting-oriented table.
const (
	ColSize   = "size"
	ColFunc   = "func"
	ColMin    = "min"
	ColMax    = "max"
	ColMean   = "mean"
	ColStddev = "stddev"
	ColOps    = "ops"
)

// Display column names of the report-oriented table.
const (
	ColElements = "Elements"
	ColFunction = "Function"
	ColOPS      = "OPS"
	ColMinTime  = "Min Time (s)"
	ColMaxTime  = "Max Time (s)"
	ColMeanTime = "Mean Time (s)"
	ColStdDev   = "Std Dev"
)

// ReportColumns is the column order of the report-oriented table.
var ReportColumns = []string{ColElements, ColFunction, ColOPS, ColMinTime, ColMaxTime, ColMeanTime, ColStdDev}

// AggregateTable concatenates the records of every result file of one run
// into the plotting-oriented table, with columns size, func, min, max, mean,
// stddev and ops. Row order is the file-then-entry discovery order of the
// records.
func AggregateTable(records []benchmarks.Record) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, errors.New("no benchmark records to aggregate")
	}
	df := dataframe.LoadStructs(records)
	if df.Error() != nil {
		return df, errors.Wrap(df.Error(), "failed to build benchmark table")
	}
	return df, nil
}

// ReportTable derives the report-oriented shape from the plotting-oriented
// table: display column names, rows sorted by Elements ascending and OPS
// descending within each size. Numeric values stay floats; the Markdown
// emitter applies the fixed-precision formatting.
func ReportTable(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	report := df.
		Rename(ColElements, ColSize).
		Rename(ColFunction, ColFunc).
		Rename(ColOPS, ColOps).
		Rename(ColMinTime, ColMin).
		Rename(ColMaxTime, ColMax).
		Rename(ColMeanTime, ColMean).
		Rename(ColStdDev, ColStddev).
		Select(ReportColumns).
		Arrange(dataframe.Sort(ColElements), dataframe.RevSort(ColOPS))
	if report.Error() != nil {
		return report, errors.Wrap(report.Error(), "failed to build report table")
	}
	return report, nil
}

// FunctionNames returns the distinct function names of the table, in first
// appearance order.
func FunctionNames(df dataframe.DataFrame) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range df.Col(ColFunc).Records() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// SizesAscending returns the distinct input sizes of a table column, sorted
// ascending.
func SizesAscending(df dataframe.DataFrame, column string) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, v := range df.Col(column).Float() {
		size := int(v)
		if !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}
	slices.Sort(sizes)
	return sizes
}

// FilterByFunc returns the rows of the plotting-oriented table belonging to
// one function, sorted by size ascending.
func FilterByFunc(df dataframe.DataFrame, funcName string) dataframe.DataFrame {
	return df.
		Filter(dataframe.F{Colname: ColFunc, Comparator: series.Eq, Comparando: funcName}).
		Arrange(dataframe.Sort(ColSize))
}
