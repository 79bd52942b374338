// Package report renders the output artifacts of one benchmark run: the
// per-metric comparison charts, the acceleration chart, the Markdown table
// report and, optionally, an interactive HTML version of the charts.
//
// All artifacts of one invocation go into a freshly created output directory
// named after the invocation time, so reruns never overwrite each other.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/worktif/purem-benchmarks/support/fsutil"
)

// DirPrefix prefixes every output directory name.
const DirPrefix = "purem_benchmarks_"

// NewOutputDir creates (and returns the path of) a timestamp-named output
// directory under root, creating root itself if needed.
func NewOutputDir(root string) (string, error) {
	root = fsutil.MustReplaceTildeInDir(root)
	now := time.Now()
	name := fmt.Sprintf("%s%s__%02d", DirPrefix, now.Format("2006-01-02_15_04_05"), now.Nanosecond()/1e7)
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create benchmarks output directory %q", dir)
	}
	return dir, nil
}
