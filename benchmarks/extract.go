package benchmarks

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Record is one benchmark measurement: the timing statistics of one probed
// function at one input size. Records are immutable once extracted.
//
// The `dataframe` tags name the columns of the plotting-oriented table the
// aggregation step builds from these records.
type Record struct {
	Size   int     `dataframe:"size"`
	Func   string  `dataframe:"func"`
	Min    float64 `dataframe:"min"`
	Max    float64 `dataframe:"max"`
	Mean   float64 `dataframe:"mean"`
	Stddev float64 `dataframe:"stddev"`
	Ops    float64 `dataframe:"ops"`
}

// Wire format of a result file. Statistics fields are pointers so that
// missing keys can be told apart from zero values and rejected.
type resultDocument struct {
	RunStamp    string            `json:"run_stamp,omitempty"`
	Datetime    string            `json:"datetime,omitempty"`
	MachineInfo *MachineInfo      `json:"machine_info,omitempty"`
	Benchmarks  []resultBenchmark `json:"benchmarks"`
}

type resultBenchmark struct {
	Name   string       `json:"name,omitempty"`
	Params resultParams `json:"params"`
	Stats  resultStats  `json:"stats"`
}

type resultParams struct {
	FuncName string `json:"func_name"`
	// Size carried as a structured field; 0 means absent, in which case the
	// size encoded in the file name is used (legacy files).
	Size int `json:"size,omitempty"`
}

type resultStats struct {
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	Stddev *float64 `json:"stddev"`
	Ops    *float64 `json:"ops"`
	Rounds int      `json:"rounds,omitempty"`
}

// MachineInfo describes the machine a result file was produced on.
type MachineInfo struct {
	OS        string `json:"os,omitempty"`
	Arch      string `json:"arch,omitempty"`
	NumCPU    int    `json:"num_cpu,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// Extract reads one result file and produces one Record per benchmark entry
// in it. Malformed content -- missing statistics, a missing function name,
// or a structured size disagreeing with the size encoded in the file name --
// aborts with an error; there is no partial-record recovery.
func Extract(file ResultFile) ([]Record, error) {
	contents, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read benchmark result file %q", file.Path)
	}
	var doc resultDocument
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse benchmark result file %q", file.Path)
	}
	if doc.RunStamp != "" && doc.RunStamp != file.Stamp {
		return nil, errors.Errorf("result file %q carries run stamp %q but its name encodes %q",
			file.Path, doc.RunStamp, file.Stamp)
	}
	if len(doc.Benchmarks) == 0 {
		return nil, errors.Errorf("result file %q contains no benchmark entries", file.Path)
	}

	records := make([]Record, 0, len(doc.Benchmarks))
	for ii, entry := range doc.Benchmarks {
		if entry.Params.FuncName == "" {
			return nil, errors.Errorf("benchmark entry #%d of %q is missing params.func_name", ii, file.Path)
		}
		size := file.Size
		if entry.Params.Size != 0 {
			if entry.Params.Size != file.Size {
				return nil, errors.Errorf(
					"benchmark entry #%d of %q declares size %d but the file name encodes %d",
					ii, file.Path, entry.Params.Size, file.Size)
			}
			size = entry.Params.Size
		}
		stats, err := entry.Stats.validate()
		if err != nil {
			return nil, errors.WithMessagef(err, "benchmark entry #%d of %q", ii, file.Path)
		}
		records = append(records, Record{
			Size:   size,
			Func:   entry.Params.FuncName,
			Min:    stats[0],
			Max:    stats[1],
			Mean:   stats[2],
			Stddev: stats[3],
			Ops:    stats[4],
		})
	}
	return records, nil
}

func (s resultStats) validate() ([5]float64, error) {
	var values [5]float64
	for ii, field := range []struct {
		key   string
		value *float64
	}{
		{"min", s.Min}, {"max", s.Max}, {"mean", s.Mean}, {"stddev", s.Stddev}, {"ops", s.Ops},
	} {
		if field.value == nil {
			return values, errors.Errorf("is missing stats.%s", field.key)
		}
		values[ii] = *field.value
	}
	return values, nil
}

// ExtractAll extracts the records of every located result file, in
// file-then-entry discovery order.
func ExtractAll(files []ResultFile) ([]Record, error) {
	var records []Record
	for _, file := range files {
		fileRecords, err := Extract(file)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}
