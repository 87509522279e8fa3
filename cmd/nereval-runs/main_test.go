package main

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticize/nereval/eval"
	"github.com/semanticize/nereval/storage"
)

func makeRuns(t *testing.T) (path string, ids []int64) {
	path = filepath.Join(t.TempDir(), "runs.db")
	db, err := storage.MakeDB(path, true)
	require.NoError(t, err)
	defer db.Close()

	for _, results := range [][]eval.Result{
		{{Verdict: eval.Correct, Entities: eval.Counts{TP: 1}}},
		{{Verdict: eval.Mismatch}},
	} {
		run, err := storage.BeginRun(db, "conll/alg_x.testb", "conll")
		require.NoError(t, err)
		var acc eval.Accumulator
		for i := range results {
			require.NoError(t, run.Sentence(uint64(i), 0, &results[i]))
			acc.Record(&results[i])
		}
		sum := acc.Finalize()
		require.NoError(t, run.Finish(&sum))
		ids = append(ids, run.ID)
	}
	return path, ids
}

func TestRunList(t *testing.T) {
	path, ids := makeRuns(t)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{path}, &stdout, &stderr), stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id "))
	assert.Equal(t, strconv.FormatInt(ids[0], 10), strings.Fields(lines[1])[0])
	assert.Equal(t, "1.000000", strings.Fields(lines[1])[10])
	assert.Equal(t, "nan", strings.Fields(lines[2])[11])
}

func TestRunOne(t *testing.T) {
	path, ids := makeRuns(t)
	id := strconv.FormatInt(ids[1], 10)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--run", id, "--tags", path},
		&stdout, &stderr), stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	// Header, the run, one line per tag.
	require.Len(t, lines, 7)
	assert.Equal(t, id, strings.Fields(lines[1])[0])
	assert.Equal(t, "S", strings.Fields(lines[2])[0])
	assert.Equal(t, "O", strings.Fields(lines[6])[0])
}

func TestRunErrors(t *testing.T) {
	path, _ := makeRuns(t)

	for _, args := range [][]string{
		nil,
		{filepath.Join(t.TempDir(), "missing.db")},
		{"--run", "999", path},
	} {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(args, &stdout, &stderr), "%v", args)
		assert.NotEmpty(t, stderr.String())
	}
}
