// Package benchmarks locates benchmark result files on disk and extracts
// their records.
//
// One "run" spans several result files, one per (function, input size)
// probe, all sharing a run stamp. File names follow a strict grammar:
//
//	<ID>_<name>_<stamp>_<size>.json
//
// where <ID> is the probe identifier as a 4-digit zero-padded integer,
// <name> matches [A-Za-z0-9-]+ (underscores are the delimiter and cannot
// appear inside tokens), <stamp> is the underscore-free run stamp shared by
// every file of the run, and <size> is the decimal input size. File names
// that do not conform are rejected with an error rather than silently
// mis-parsed.
package benchmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/worktif/purem-benchmarks/support/fsutil"
)

// Ext is the extension of every benchmark result file.
const Ext = ".json"

// fileNameRegex encodes the result file grammar. Group 1 is the probe
// identifier, group 2 the probe name, group 3 the run stamp and group 4 the
// input size.
var fileNameRegex = regexp.MustCompile(`^(\d{4})_([A-Za-z0-9-]+)_([A-Za-z0-9.\-]+)_(\d+)\.json$`)

// ResultFile is one benchmark result file, with the metadata encoded in its
// name already parsed out. It is discovered once and never mutated.
type ResultFile struct {
	// Path of the file, including the directory it was found in.
	Path string

	// TestNumber is the probe identifier encoded in the name prefix.
	TestNumber int

	// Name of the probe, e.g. "softmax-gonum".
	Name string

	// Stamp is the run stamp token shared by all files of one run.
	Stamp string

	// Size is the input size encoded in the trailing token of the name.
	Size int
}

// ParseFileName parses the metadata encoded in a result file name.
// The path may include directories; only the base name is parsed.
func ParseFileName(path string) (ResultFile, error) {
	base := filepath.Base(path)
	groups := fileNameRegex.FindStringSubmatch(base)
	if groups == nil {
		return ResultFile{}, errors.Errorf(
			"benchmark result file %q does not follow the <ID>_<name>_<stamp>_<size>%s naming grammar", base, Ext)
	}
	testNumber, err := strconv.Atoi(groups[1])
	if err != nil {
		return ResultFile{}, errors.Wrapf(err, "invalid probe identifier in result file %q", base)
	}
	size, err := strconv.Atoi(groups[4])
	if err != nil {
		return ResultFile{}, errors.Wrapf(err, "invalid size suffix in result file %q", base)
	}
	return ResultFile{
		Path:       path,
		TestNumber: testNumber,
		Name:       groups[2],
		Stamp:      groups[3],
		Size:       size,
	}, nil
}

// FileName renders the canonical result file name for the given metadata.
// It is the inverse of ParseFileName.
func FileName(testNumber int, name, stamp string, size int) string {
	return fmt.Sprintf("%04d_%s_%s_%d%s", testNumber, name, stamp, size, Ext)
}

// Locate finds every result file of the run that probe testNumber belongs
// to, in two phases: first it matches files prefixed with the zero-padded
// identifier, then it returns all files of the directory sharing the run
// stamp of the first such match -- each probe of a run writes its own files,
// distinguished by identifier but unified by the stamp.
//
// It fails if no file matches the identifier prefix, or if any ".json" file
// in the directory does not conform to the naming grammar.
func Locate(dir string, testNumber int) ([]ResultFile, error) {
	dir = fsutil.MustReplaceTildeInDir(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list benchmark results directory %q", dir)
	}

	prefix := fmt.Sprintf("%04d", testNumber)
	var all []ResultFile
	firstMatch := -1
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		file, err := ParseFileName(name)
		if err != nil {
			return nil, err
		}
		file.Path = filepath.Join(dir, name)
		if firstMatch < 0 && strings.HasPrefix(name, prefix) {
			firstMatch = len(all)
		}
		all = append(all, file)
	}
	if firstMatch < 0 {
		return nil, errors.Errorf("no benchmark result files starting with %q found in %q", prefix, dir)
	}

	// os.ReadDir returns entries sorted by name, so the "first match" is
	// deterministic across operating systems.
	stamp := all[firstMatch].Stamp
	var run []ResultFile
	for _, file := range all {
		if file.Stamp == stamp {
			run = append(run, file)
		}
	}
	klog.V(1).Infof("Located %d result files for run stamp %q in %q", len(run), stamp, dir)
	return run, nil
}
