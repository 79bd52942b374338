package benchmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileName(t *testing.T) {
	file, err := ParseFileName("0001_softmax-purem_20260830T120000_200000.json")
	require.NoError(t, err)
	assert.Equal(t, 1, file.TestNumber)
	assert.Equal(t, "softmax-purem", file.Name)
	assert.Equal(t, "20260830T120000", file.Stamp)
	assert.Equal(t, 200000, file.Size)

	// The directory part is ignored for parsing.
	file, err = ParseFileName("/some/dir/0004_softmax-gonum_20260830T120000_1000.json")
	require.NoError(t, err)
	assert.Equal(t, 4, file.TestNumber)
	assert.Equal(t, 1000, file.Size)
}

func TestParseFileNameRejectsBadNames(t *testing.T) {
	for _, name := range []string{
		"results.json", // no structure at all
		"1_softmax-purem_20260830T120000_1000.json",   // identifier not zero-padded
		"0001_soft_max_20260830T120000_1000.json",     // underscore inside the name token
		"0001_softmax-purem_20260830T120000_1e6.json", // non-numeric size
		"0001_softmax-purem_20260830T120000_1000.txt", // wrong extension
		"0001_softmax-purem_1000.json",                // missing stamp token
	} {
		_, err := ParseFileName(name)
		assert.Errorf(t, err, "name %q should be rejected", name)
	}
}

func TestFileNameRoundTrip(t *testing.T) {
	name := FileName(12, "softmax-tensor", "20260830T120000", 500000)
	assert.Equal(t, "0012_softmax-tensor_20260830T120000_500000.json", name)
	file, err := ParseFileName(name)
	require.NoError(t, err)
	assert.Equal(t, 12, file.TestNumber)
	assert.Equal(t, "softmax-tensor", file.Name)
	assert.Equal(t, 500000, file.Size)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	// One run with stamp A spanning three probes, plus an older run with
	// stamp B sharing probe identifiers.
	touch(t, dir, "0001_softmax-purem_stampA_1000.json")
	touch(t, dir, "0002_softmax-gonum_stampA_1000.json")
	touch(t, dir, "0003_softmax-tensor_stampA_2000.json")
	touch(t, dir, "0001_softmax-purem_stampB_1000.json")
	touch(t, dir, "notes.txt") // non-result files are ignored

	files, err := Locate(dir, 2)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, "stampA", f.Stamp)
	}

	// Identifier 1 is ambiguous between the runs; the lexicographically
	// first match (stamp A) wins, and all files of that run come back.
	files, err = Locate(dir, 1)
	require.NoError(t, err)
	assert.Len(t, files, 3)
	for _, f := range files {
		assert.Equal(t, "stampA", f.Stamp)
	}
}

func TestLocateNotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001_softmax-purem_stampA_1000.json")

	_, err := Locate(dir, 9999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9999")
	assert.Contains(t, err.Error(), dir)
}

func TestLocateRejectsNonConformingResultFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001_softmax-purem_stampA_1000.json")
	touch(t, dir, "garbage_file.json")

	_, err := Locate(dir, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "garbage_file.json")
}
