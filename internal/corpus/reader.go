// Package corpus reads evaluation input: one sentence per line, as
//
//	line_index <TAB> gold_tokens <TAB> predicted_tokens
package corpus

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/semanticize/nereval/nlp"
)

var ErrMalformedRecord = errors.New("malformed record")

// A sentence with its gold-standard and predicted annotations.
type Record struct {
	// Index as given on the input line.
	Index uint64
	// Byte offset of the line in the input.
	Offset int64

	Gold, Pred []nlp.Token
}

type Reader struct {
	r      *bufio.Reader
	offset int64
	lineno int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1<<16)}
}

// Next returns the next record, or io.EOF after the last one. Blank lines
// are skipped.
func (r *Reader) Next() (*Record, error) {
	for {
		line, err := r.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, err
		}
		offset := r.offset
		r.offset += int64(len(line))
		r.lineno++

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		rec, perr := parse(line)
		if perr != nil {
			return nil, fmt.Errorf("line %d: %w", r.lineno, perr)
		}
		rec.Offset = offset
		return rec, nil
	}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

func parse(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: expected 3 tab-separated fields, got %d",
			ErrMalformedRecord, len(fields))
	}
	idx, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: line index %q", ErrMalformedRecord, fields[0])
	}
	return &Record{
		Index: idx,
		Gold:  nlp.ParseTokens(fields[1]),
		Pred:  nlp.ParseTokens(fields[2]),
	}, nil
}

// Open opens the input at path, decompressing .bz2 files on the fly. size
// is the number of bytes the returned reader will produce, or -1 if that
// isn't known in advance.
func Open(path string) (r io.ReadCloser, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	size = info.Size()

	r = f
	if filepath.Ext(path) == ".bz2" {
		r = struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(bufio.NewReader(f)), f}
		size = -1
	}
	return
}
