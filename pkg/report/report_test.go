package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/filestats/pkg/rank"
	"github.com/leapstack-labs/filestats/pkg/stats"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

func sampleDocument() *Document {
	st := &stats.Stats{Lines: 2, Words: 6, Bytes: 11, Freq: stats.FrequencyTable{"b": 3, "a": 2, "c": 1}}
	top := []rank.Entry{{Word: "b", Count: 3}, {Word: "a", Count: 2}}
	return New("input.txt", st, top, false)
}

func TestNewDocument(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, "file-stats", doc.Tool)
	assert.Equal(t, "input.txt", doc.InputPath)
	assert.Equal(t, uint64(2), doc.Lines)
	assert.Equal(t, uint64(6), doc.Words)
	assert.Equal(t, uint64(11), doc.Bytes)
	assert.False(t, doc.CaseSensitive)
	assert.Equal(t, []WordCount{{"b", 3}, {"a", 2}}, doc.TopWords)
	// The timestamp is wall-clock and opaque; only its shape is stable.
	assert.Regexp(t, timestampPattern, doc.Timestamp)
}

// The rendered document must decode with a standard JSON decoder and
// round-trip every field.
func TestRenderRoundTrip(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	var decoded struct {
		Tool          string `json:"tool"`
		Timestamp     string `json:"timestamp"`
		InputPath     string `json:"input_path"`
		Lines         uint64 `json:"lines"`
		Words         uint64 `json:"words"`
		Bytes         uint64 `json:"bytes"`
		CaseSensitive bool   `json:"case_sensitive"`
		TopWords      []struct {
			Word  string `json:"word"`
			Count uint64 `json:"count"`
		} `json:"top_words"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, doc.Tool, decoded.Tool)
	assert.Regexp(t, timestampPattern, decoded.Timestamp)
	assert.Equal(t, doc.InputPath, decoded.InputPath)
	assert.Equal(t, doc.Lines, decoded.Lines)
	assert.Equal(t, doc.Words, decoded.Words)
	assert.Equal(t, doc.Bytes, decoded.Bytes)
	assert.Equal(t, doc.CaseSensitive, decoded.CaseSensitive)
	require.Len(t, decoded.TopWords, 2)
	assert.Equal(t, "b", decoded.TopWords[0].Word)
	assert.Equal(t, uint64(3), decoded.TopWords[0].Count)
}

// Escaped paths must decode back to the original string.
func TestInputPathEscapingRoundTrip(t *testing.T) {
	nasty := "dir\twith\n\"quotes\" \\ and \x01 control"
	st := &stats.Stats{Freq: stats.FrequencyTable{}}
	doc := New(nasty, st, nil, true)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, nasty, decoded["input_path"])
}

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"quote", `say "hi"`, `say \"hi\"`},
		{"backslash", `a\b`, `a\\b`},
		{"short escapes", "\b\f\n\r\t", `\b\f\n\r\t`},
		{"other control bytes", "\x00\x01\x1f", `\u0000\u0001\u001f`},
		{"high bytes pass through", "caf\xc3\xa9", "caf\xc3\xa9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestWriteFile(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, doc.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestWriteFileUnwritable(t *testing.T) {
	doc := sampleDocument()
	path := filepath.Join(t.TempDir(), "missing-dir", "report.json")

	err := doc.WriteFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestEmptyTopWordsRendersEmptyArray(t *testing.T) {
	st := &stats.Stats{Freq: stats.FrequencyTable{}}
	doc := New("empty.txt", st, nil, false)

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{}, decoded["top_words"])
}
