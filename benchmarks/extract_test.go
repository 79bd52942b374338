package benchmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) ResultFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	file, err := ParseFileName(name)
	require.NoError(t, err)
	file.Path = path
	return file
}

const validDocument = `{
  "run_stamp": "stampA",
  "benchmarks": [
    {
      "name": "softmax-purem",
      "params": {"func_name": "Softmax: Purem", "size": 1000},
      "stats": {"min": 1e-4, "max": 3e-4, "mean": 2e-4, "stddev": 5e-5, "ops": 5000.0, "rounds": 20}
    }
  ]
}`

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "0001_softmax-purem_stampA_1000.json", validDocument)

	records, err := Extract(file)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 1000, rec.Size)
	assert.Equal(t, "Softmax: Purem", rec.Func)
	assert.Equal(t, 1e-4, rec.Min)
	assert.Equal(t, 3e-4, rec.Max)
	assert.Equal(t, 2e-4, rec.Mean)
	assert.Equal(t, 5e-5, rec.Stddev)
	assert.Equal(t, 5000.0, rec.Ops)
}

func TestExtractLegacySizeFromFileName(t *testing.T) {
	dir := t.TempDir()
	// Legacy files carry no structured size; the file name is the source.
	file := writeFile(t, dir, "0002_softmax-gonum_stampA_2000.json", `{
	  "benchmarks": [
	    {"params": {"func_name": "Softmax: Gonum"},
	     "stats": {"min": 1e-4, "max": 3e-4, "mean": 2e-4, "stddev": 5e-5, "ops": 5000.0}}
	  ]
	}`)

	records, err := Extract(file)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2000, records[0].Size)
}

func TestExtractFailures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		fileName string
		contents string
		wantIn   string
	}{
		{"not json", "0001_a_stampA_1000.json", "not json at all", "failed to parse"},
		{"no entries", "0002_a_stampA_1000.json", `{"benchmarks": []}`, "no benchmark entries"},
		{"missing func name", "0003_a_stampA_1000.json",
			`{"benchmarks": [{"params": {}, "stats": {"min":1,"max":1,"mean":1,"stddev":0,"ops":1}}]}`,
			"params.func_name"},
		{"missing stat", "0004_a_stampA_1000.json",
			`{"benchmarks": [{"params": {"func_name":"f"}, "stats": {"min":1,"max":1,"mean":1,"stddev":0}}]}`,
			"stats.ops"},
		{"size mismatch", "0005_a_stampA_1000.json",
			`{"benchmarks": [{"params": {"func_name":"f","size":2000}, "stats": {"min":1,"max":1,"mean":1,"stddev":0,"ops":1}}]}`,
			"declares size 2000"},
		{"stamp mismatch", "0006_a_stampA_1000.json",
			`{"run_stamp": "stampB", "benchmarks": [{"params": {"func_name":"f"}, "stats": {"min":1,"max":1,"mean":1,"stddev":0,"ops":1}}]}`,
			"run stamp"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			file := writeFile(t, dir, test.fileName, test.contents)
			_, err := Extract(file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.wantIn)
		})
	}
}

func TestWriteResultFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	stats := Stats{Min: 1e-4, Max: 3e-4, Mean: 2e-4, Stddev: 5e-5, Ops: 5000, Rounds: 20}
	path, err := WriteResultFile(dir, 3, "softmax-tensor", "20260830T120000", 500000,
		"Softmax: Tensor", stats, CurrentMachineInfo())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0003_softmax-tensor_20260830T120000_500000.json"), path)

	files, err := Locate(dir, 3)
	require.NoError(t, err)
	require.Len(t, files, 1)

	records, err := ExtractAll(files)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		Size: 500000, Func: "Softmax: Tensor",
		Min: 1e-4, Max: 3e-4, Mean: 2e-4, Stddev: 5e-5, Ops: 5000,
	}, records[0])
}

func TestWriteResultFileRejectsBadProbeName(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteResultFile(dir, 1, "has_underscore", "stampA", 10, "f", Stats{}, nil)
	require.Error(t, err)
}
