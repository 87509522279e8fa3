package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/semanticize/nereval/bioes"
	"github.com/semanticize/nereval/eval"
)

// Value of macro F1 when no sentence could be scored.
const Undefined = "nan"

type stat struct {
	key, value string
}

// Stats is an ordered set of key/value statistics. It serializes as a JSON
// object with string values, in insertion order.
type Stats []stat

func (s *Stats) Add(key, value string) {
	*s = append(*s, stat{key, value})
}

// Get returns the value for key, or "" if there is none.
func (s Stats) Get(key string) string {
	for _, st := range s {
		if st.key == key {
			return st.value
		}
	}
	return ""
}

func (s Stats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, st := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(st.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(st.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Everything that goes into a statistics report besides the scores.
type RunInfo struct {
	Input     string
	Benchmark string
	Duration  time.Duration

	// Sizes of the detail files.
	NerNedSize, NerSize int64
}

// FormatDuration formats d as whole hours, minutes and seconds: "1h 2m 3s".
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", secs/3600, secs%3600/60, secs%60)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// NewStats collects the statistics of a finished run.
func NewStats(info RunInfo, sum *eval.Summary) Stats {
	itoa := strconv.Itoa
	var s Stats

	s.Add("duration", FormatDuration(info.Duration))
	s.Add("alg_filename", info.Benchmark+"/"+filepath.Base(info.Input))
	s.Add("filesize_ner_ned", strconv.FormatInt(info.NerNedSize, 10))
	s.Add("filesize_ner", strconv.FormatInt(info.NerSize, 10))

	s.Add("micro_F1_InKB", formatFloat(sum.MicroF1))
	if sum.MacroDefined() {
		s.Add("macro_F1_InKB", formatFloat(sum.MacroF1))
	} else {
		s.Add("macro_F1_InKB", Undefined)
	}
	s.Add("micro_Tp", itoa(sum.Entities.TP))
	s.Add("micro_Fp", itoa(sum.Entities.FP))
	s.Add("micro_Fn", itoa(sum.Entities.FN))

	s.Add("num_total", itoa(sum.Total))
	s.Add("num_correct", itoa(sum.Correct))
	s.Add("num_wrong", itoa(sum.Wrong))
	s.Add("num_mismatch", itoa(sum.Mismatch))

	for _, tag := range bioes.Tags {
		c := sum.Tokens[tag]
		s.Add(tag.String()+"_tp", itoa(c.TP))
		s.Add(tag.String()+"_fp", itoa(c.FP))
		s.Add(tag.String()+"_fn", itoa(c.FN))
	}
	return s
}

// Write writes s as indented JSON.
func (s Stats) Write(w io.Writer) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteFile writes s to path, replacing any existing file.
func (s Stats) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = s.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
