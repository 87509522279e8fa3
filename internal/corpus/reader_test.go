package corpus

import (
	"compress/bzip2"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = "0\tw1\\?\\Q10 w2\\?\\I\tw1\\?\\Q10 w2\\?\\I\n" +
	"\n" +
	"7\ta\\?\\O\tb\\?\\O\r\n" +
	"12\ta\\?\\O b\\?\\O\ta\\?\\O"

func readAll(t *testing.T, r *Reader) (recs []*Record) {
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestReader(t *testing.T) {
	recs := readAll(t, NewReader(strings.NewReader(input)))
	require.Len(t, recs, 3)

	for i, want := range []struct {
		index        uint64
		ngold, npred int
	}{{0, 2, 2}, {7, 1, 1}, {12, 2, 1}} {
		assert.Equal(t, want.index, recs[i].Index)
		assert.Len(t, recs[i].Gold, want.ngold)
		assert.Len(t, recs[i].Pred, want.npred)
	}
	assert.Equal(t, "Q10", recs[0].Pred[0].Marker)
	assert.Equal(t, "b", recs[1].Pred[0].Word)

	// Offsets point at the start of each record's line.
	for _, rec := range recs {
		line := input[rec.Offset:]
		assert.True(t, strings.HasPrefix(line, strconv.FormatUint(rec.Index, 10)+"\t"),
			"offset %d of record %d", rec.Offset, rec.Index)
	}
}

func TestReaderOffsetAtEnd(t *testing.T) {
	r := NewReader(strings.NewReader(input))
	readAll(t, r)
	assert.Equal(t, int64(len(input)), r.Offset())
}

func TestReaderMalformed(t *testing.T) {
	for _, in := range []string{
		"0\tonly gold\n",
		"x\ta\\?\\O\ta\\?\\O\n",
		"-1\ta\\?\\O\ta\\?\\O\n",
	} {
		_, err := NewReader(strings.NewReader(in)).Next()
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%q: expected ErrMalformedRecord, got %v", in, err)
		}
	}

	r := NewReader(strings.NewReader("1\ta\\?\\O\ta\\?\\O\nbad\n"))
	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alg_test.txt")
	require.NoError(t, os.WriteFile(path, []byte(input), 0644))

	f, size, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(len(input)), size)
	assert.Len(t, readAll(t, NewReader(f)), 3)

	_, _, err = Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestOpenBzip2(t *testing.T) {
	// An empty stream: the standard library can only decompress.
	path := filepath.Join(t.TempDir(), "alg_test.txt.bz2")
	empty := []byte("BZh9\x17\x72\x45\x38\x50\x90\x00\x00\x00\x00")
	require.NoError(t, os.WriteFile(path, empty, 0644))

	f, size, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, int64(-1), size)

	_, err = NewReader(f).Next()
	var serr bzip2.StructuralError
	if err != io.EOF && err != io.ErrUnexpectedEOF && !errors.As(err, &serr) {
		t.Errorf("unexpected error %v", err)
	}
}
