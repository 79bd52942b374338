package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktif/purem-benchmarks/analysis"
	"github.com/worktif/purem-benchmarks/benchmarks"
)

func record(funcName string, size int, ops float64) benchmarks.Record {
	mean := 1.0 / ops
	return benchmarks.Record{
		Size: size, Func: funcName,
		Min: mean * 0.9, Max: mean * 1.1, Mean: mean, Stddev: mean * 0.05,
		Ops: ops,
	}
}

func sampleTables(t *testing.T) (plotting, reporting dataframe.DataFrame) {
	t.Helper()
	df, err := analysis.AggregateTable([]benchmarks.Record{
		record("Softmax: Gonum", 2000, 300),
		record("Softmax: Purem", 1000, 500),
		record("Softmax: Gonum", 1000, 250),
		record("Softmax: Purem", 2000, 900),
	})
	require.NoError(t, err)
	report, err := analysis.ReportTable(df)
	require.NoError(t, err)
	return df, report
}

func TestWriteMarkdown(t *testing.T) {
	_, reportDf := sampleTables(t)
	dir := t.TempDir()
	path, err := WriteMarkdown(reportDf, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, MarkdownFileName), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(contents)

	// One section per input size, ascending.
	first := strings.Index(text, "### Elements: 1000")
	second := strings.Index(text, "### Elements: 2000")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)

	// The Elements column is dropped from the per-section tables.
	assert.Contains(t, text, "| Function | OPS | Min Time (s) | Max Time (s) | Mean Time (s) | Std Dev |")
	assert.NotContains(t, text, "| Elements |")

	// OPS fixed-point with two decimals, times in scientific notation, and
	// within each section the faster function comes first.
	assert.Contains(t, text, "| Softmax: Purem | 500.00 | 1.80e-03 |")
	puremRow := strings.Index(text, "| Softmax: Purem | 500.00 |")
	gonumRow := strings.Index(text, "| Softmax: Gonum | 250.00 |")
	require.GreaterOrEqual(t, puremRow, 0)
	require.Greater(t, gonumRow, puremRow)
}
