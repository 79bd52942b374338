package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/worktif/purem-benchmarks/analysis"
	"github.com/worktif/purem-benchmarks/support/xslices"
)

// MarkdownFileName is the name of the Markdown report within the output
// directory.
const MarkdownFileName = "benchmarks_table.md"

// WriteMarkdown writes the report-oriented table (see analysis.ReportTable)
// as a Markdown file: one "### Elements: <size>" section per input size,
// ascending, each holding a table of that size's rows with the Elements
// column dropped. Time statistics are rendered in scientific notation with
// two decimals, throughput as two-decimal fixed point.
func WriteMarkdown(reportDf dataframe.DataFrame, dir string) (string, error) {
	path := filepath.Join(dir, MarkdownFileName)
	var sb strings.Builder
	sb.WriteString("# Benchmark Results\n\n")

	for _, size := range analysis.SizesAscending(reportDf, analysis.ColElements) {
		group := reportDf.Filter(dataframe.F{
			Colname: analysis.ColElements, Comparator: series.Eq, Comparando: size,
		})
		if group.Error() != nil {
			return "", errors.Wrapf(group.Error(), "failed to group report rows for size %d", size)
		}
		sb.WriteString(fmt.Sprintf("### Elements: %d\n\n", size))
		writeMarkdownTable(&sb, group)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write Markdown report %q", path)
	}
	return path, nil
}

// sectionColumns is ReportColumns minus the Elements column, which is
// redundant inside a per-size section.
var sectionColumns = xslices.Keep(analysis.ReportColumns, func(c string) bool {
	return c != analysis.ColElements
})

func writeMarkdownTable(sb *strings.Builder, group dataframe.DataFrame) {
	sb.WriteString("| " + strings.Join(sectionColumns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(sectionColumns)) + "\n")

	functions := group.Col(analysis.ColFunction).Records()
	ops := group.Col(analysis.ColOPS).Float()
	minTimes := group.Col(analysis.ColMinTime).Float()
	maxTimes := group.Col(analysis.ColMaxTime).Float()
	meanTimes := group.Col(analysis.ColMeanTime).Float()
	stdDevs := group.Col(analysis.ColStdDev).Float()
	for ii := range functions {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2e | %.2e | %.2e | %.2e |\n",
			functions[ii], ops[ii], minTimes[ii], maxTimes[ii], meanTimes[ii], stdDevs[ii]))
	}
}
