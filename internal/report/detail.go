package report

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/semanticize/nereval/eval"
	"github.com/semanticize/nereval/internal/corpus"
)

// Detail writes one line per sentence: line index, byte offset of the
// input line and a value.
type Detail struct {
	w     *bufio.Writer
	c     io.Closer
	size  int64
	value func(*eval.Result) uint64
	skip  func(*eval.Result) bool
	buf   []byte
}

func newDetail(w io.Writer, value func(*eval.Result) uint64) *Detail {
	d := &Detail{w: bufio.NewWriter(w), value: value}
	if c, ok := w.(io.Closer); ok {
		d.c = c
	}
	return d
}

// Verdicts writes linking verdicts: 0 correct, 1 wrong, 2 mismatch.
func Verdicts(w io.Writer) *Detail {
	return newDetail(w, func(r *eval.Result) uint64 { return uint64(r.Verdict) })
}

// TagErrors writes the tagging error flags of each sentence. Mismatched
// sentences are never decoded and get no line.
func TagErrors(w io.Writer) *Detail {
	d := newDetail(w, func(r *eval.Result) uint64 { return uint64(r.Flags) })
	d.skip = func(r *eval.Result) bool { return r.Verdict == eval.Mismatch }
	return d
}

// Create opens path for writing with the given constructor.
func Create(path string, kind func(io.Writer) *Detail) (*Detail, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return kind(f), nil
}

func (d *Detail) Sentence(rec *corpus.Record, r *eval.Result) error {
	if d.skip != nil && d.skip(r) {
		return nil
	}
	b := d.buf[:0]
	b = strconv.AppendUint(b, rec.Index, 10)
	b = append(b, '\t')
	b = strconv.AppendInt(b, rec.Offset, 10)
	b = append(b, '\t')
	b = strconv.AppendUint(b, d.value(r), 10)
	b = append(b, '\n')
	d.buf = b

	n, err := d.w.Write(b)
	d.size += int64(n)
	return err
}

// Size is the number of bytes written so far.
func (d *Detail) Size() int64 {
	return d.size
}

// Close flushes buffered output and closes the underlying file, if any.
// Calling it again only flushes.
func (d *Detail) Close() error {
	err := d.w.Flush()
	if d.c != nil {
		if cerr := d.c.Close(); err == nil {
			err = cerr
		}
		d.c = nil
	}
	return err
}
