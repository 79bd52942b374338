package benchmarks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// Stats are the per-operation timing statistics of one probe, in seconds,
// plus the derived operations-per-second throughput.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	Stddev float64
	Ops    float64
	Rounds int
}

// StampFormat renders run stamps without underscores, as the file name
// grammar requires.
const StampFormat = "20060102T150405"

// NewStamp returns a run stamp for result files written now.
func NewStamp() string {
	return time.Now().Format(StampFormat)
}

// CurrentMachineInfo describes the machine the harness is running on.
func CurrentMachineInfo() *MachineInfo {
	return &MachineInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}

// WriteResultFile writes one result file for a (function, size) probe,
// named per the file grammar and carrying the run metadata as structured
// fields (the file name encoding is kept for compatibility with legacy
// readers). It returns the path written.
func WriteResultFile(dir string, testNumber int, probeName, stamp string, size int,
	funcName string, stats Stats, machine *MachineInfo) (string, error) {
	name := FileName(testNumber, probeName, stamp, size)
	if _, err := ParseFileName(name); err != nil {
		return "", errors.WithMessagef(err, "refusing to write result file with a non-conforming name")
	}

	doc := resultDocument{
		RunStamp:    stamp,
		Datetime:    time.Now().Format(time.RFC3339),
		MachineInfo: machine,
		Benchmarks: []resultBenchmark{{
			Name:   probeName,
			Params: resultParams{FuncName: funcName, Size: size},
			Stats: resultStats{
				Min:    &stats.Min,
				Max:    &stats.Max,
				Mean:   &stats.Mean,
				Stddev: &stats.Stddev,
				Ops:    &stats.Ops,
				Rounds: stats.Rounds,
			},
		}},
	}
	contents, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal result file %q", name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create results directory %q", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write result file %q", path)
	}
	return path, nil
}
