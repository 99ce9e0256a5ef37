// Package report renders analysis results as a structured JSON
// document.
//
// The document is rendered by hand rather than through encoding/json:
// the escaping contract is byte-wise (control bytes below 0x20 become
// \u00XX escapes, everything else passes through untouched), and
// encoding/json would sanitize invalid UTF-8 in paths instead of
// passing the raw bytes along. The json struct tags still describe the
// wire names so consumers can decode with encoding/json.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/leapstack-labs/filestats/pkg/rank"
	"github.com/leapstack-labs/filestats/pkg/stats"
)

// Tool is the constant identifier carried by every exported document.
const Tool = "file-stats"

// WordCount is one ranked word in the exported document.
type WordCount struct {
	Word  string `json:"word"`
	Count uint64 `json:"count"`
}

// Document is the structured export of one analysis run.
type Document struct {
	Tool          string      `json:"tool"`
	Timestamp     string      `json:"timestamp"`
	InputPath     string      `json:"input_path"`
	Lines         uint64      `json:"lines"`
	Words         uint64      `json:"words"`
	Bytes         uint64      `json:"bytes"`
	CaseSensitive bool        `json:"case_sensitive"`
	TopWords      []WordCount `json:"top_words"`
}

// New builds a Document from finished analysis results. The timestamp
// is the current wall-clock time in UTC, observed here and nowhere
// else; it is not reproducible across runs.
func New(inputPath string, st *stats.Stats, top []rank.Entry, caseSensitive bool) *Document {
	words := make([]WordCount, len(top))
	for i, e := range top {
		words[i] = WordCount{Word: e.Word, Count: e.Count}
	}
	return &Document{
		Tool:          Tool,
		Timestamp:     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		InputPath:     inputPath,
		Lines:         st.Lines,
		Words:         st.Words,
		Bytes:         st.Bytes,
		CaseSensitive: caseSensitive,
		TopWords:      words,
	}
}

// Render writes the document to w as indented JSON in fixed field
// order. It does not mutate the document.
func (d *Document) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("{\n")
	bw.WriteString("  \"tool\": \"" + Escape(d.Tool) + "\",\n")
	bw.WriteString("  \"timestamp\": \"" + Escape(d.Timestamp) + "\",\n")
	bw.WriteString("  \"input_path\": \"" + Escape(d.InputPath) + "\",\n")
	bw.WriteString("  \"lines\": " + strconv.FormatUint(d.Lines, 10) + ",\n")
	bw.WriteString("  \"words\": " + strconv.FormatUint(d.Words, 10) + ",\n")
	bw.WriteString("  \"bytes\": " + strconv.FormatUint(d.Bytes, 10) + ",\n")
	bw.WriteString("  \"case_sensitive\": " + strconv.FormatBool(d.CaseSensitive) + ",\n")
	bw.WriteString("  \"top_words\": [\n")
	for i, wc := range d.TopWords {
		bw.WriteString("    { \"word\": \"" + Escape(wc.Word) + "\", \"count\": " + strconv.FormatUint(wc.Count, 10) + " }")
		if i+1 < len(d.TopWords) {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("  ]\n")
	bw.WriteString("}\n")

	return bw.Flush()
}

// WriteFile renders the document into the file at path, creating or
// truncating it. Open and write failures name the path.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write JSON file %s: %w", path, err)
	}
	if err := d.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot write JSON file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write JSON file %s: %w", path, err)
	}
	return nil
}

// Escape applies JSON string escaping byte by byte: quote, backslash,
// backspace, form feed, newline, carriage return and tab get their
// short escapes, any other byte below 0x20 becomes \u00XX, and bytes
// from 0x20 up pass through unchanged.
func Escape(s string) string {
	out := make([]byte, 0, len(s)+8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\b':
			out = append(out, '\\', 'b')
		case '\f':
			out = append(out, '\\', 'f')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			if c < 0x20 {
				out = append(out, fmt.Sprintf(`\u%04x`, c)...)
			} else {
				out = append(out, c)
			}
		}
	}
	return string(out)
}
