package stats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		opts      Options
		wantLines uint64
		wantWords uint64
		wantFreq  FrequencyTable
	}{
		{
			name:     "empty file",
			content:  "",
			wantFreq: FrequencyTable{},
		},
		{
			name:      "two lines with tie",
			content:   "a a b\nb b c",
			wantLines: 2,
			wantWords: 6,
			wantFreq:  FrequencyTable{"a": 2, "b": 3, "c": 1},
		},
		{
			name:      "case insensitive folds",
			content:   "The The the",
			wantLines: 1,
			wantWords: 3,
			wantFreq:  FrequencyTable{"the": 3},
		},
		{
			name:      "case sensitive keeps variants",
			content:   "The The the",
			opts:      Options{CaseSensitive: true},
			wantLines: 1,
			wantWords: 3,
			wantFreq:  FrequencyTable{"The": 2, "the": 1},
		},
		{
			name:      "trailing newline does not add a line",
			content:   "one two\n",
			wantLines: 1,
			wantWords: 2,
			wantFreq:  FrequencyTable{"one": 1, "two": 1},
		},
		{
			name:      "blank lines count as lines",
			content:   "\n\nword\n",
			wantLines: 3,
			wantWords: 1,
			wantFreq:  FrequencyTable{"word": 1},
		},
		{
			name:      "crlf line endings",
			content:   "alpha beta\r\ngamma\r\n",
			wantLines: 2,
			wantWords: 3,
			wantFreq:  FrequencyTable{"alpha": 1, "beta": 1, "gamma": 1},
		},
		{
			name:      "tokens never span lines",
			content:   "fir\nst",
			wantLines: 2,
			wantWords: 2,
			wantFreq:  FrequencyTable{"fir": 1, "st": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			st, err := Analyze(path, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLines, st.Lines)
			assert.Equal(t, tt.wantWords, st.Words)
			assert.Equal(t, tt.wantFreq, st.Freq)
			// Bytes is the exact octet length, line terminators included.
			assert.Equal(t, uint64(len(tt.content)), st.Bytes)
		})
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	st, err := Analyze(path, Options{})
	require.Error(t, err)
	assert.Nil(t, st, "no partial stats on failure")
	assert.Contains(t, err.Error(), path)
}

func TestAnalyzeBytesMatchIndependentRead(t *testing.T) {
	content := "héllo wörld\nsecond line\nno trailing newline"
	path := writeFile(t, content)

	st, err := Analyze(path, Options{})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(raw)), st.Bytes)
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vocab := []string{"alpha", "Beta", "GAMMA", "delta42", "x", "YZ"}

	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		for j := 0; j < rng.Intn(8); j++ {
			sb.WriteString(vocab[rng.Intn(len(vocab))])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	path := writeFile(t, sb.String())

	for _, caseSensitive := range []bool{false, true} {
		seq, err := Analyze(path, Options{CaseSensitive: caseSensitive})
		require.NoError(t, err)

		par, err := Analyze(path, Options{CaseSensitive: caseSensitive, Workers: 4})
		require.NoError(t, err)

		assert.Equal(t, seq.Lines, par.Lines, "case_sensitive=%v", caseSensitive)
		assert.Equal(t, seq.Words, par.Words, "case_sensitive=%v", caseSensitive)
		assert.Equal(t, seq.Bytes, par.Bytes, "case_sensitive=%v", caseSensitive)
		assert.Equal(t, seq.Freq, par.Freq, "case_sensitive=%v", caseSensitive)
	}
}

func TestFrequencyTableSaturates(t *testing.T) {
	ft := FrequencyTable{"hot": math.MaxUint64}
	ft.Add("hot")
	assert.Equal(t, uint64(math.MaxUint64), ft["hot"])

	other := FrequencyTable{"hot": 3, "new": 1}
	ft.Merge(other)
	assert.Equal(t, uint64(math.MaxUint64), ft["hot"])
	assert.Equal(t, uint64(1), ft["new"])
}

func TestFileSize(t *testing.T) {
	content := "exactly these bytes\n"
	path := writeFile(t, content)

	size, err := FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(content)), size)
}

func TestSumReaderSpansChunks(t *testing.T) {
	n := fallbackChunkSize*3 + 17
	total, err := sumReader(strings.NewReader(strings.Repeat("b", n)))
	require.NoError(t, err)
	assert.Equal(t, uint64(n), total)

	total, err = sumReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = sumReader(iotest.ErrReader(errors.New("stream torn down")))
	require.Error(t, err)
}

func TestFileSizeNonRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.fifo")
	require.NoError(t, syscall.Mkfifo(path, 0600))

	payload := strings.Repeat("x", fallbackChunkSize+123)
	go func() {
		w, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		defer func() { _ = w.Close() }()
		_, _ = io.WriteString(w, payload)
	}()

	size, err := FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(payload)), size)
}

func TestSatAddSaturates(t *testing.T) {
	assert.Equal(t, uint64(5), satAdd(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), satAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(math.MaxUint64), satAdd(math.MaxUint64-1, 7))
}

func TestAnalyzeDirectory(t *testing.T) {
	dir := t.TempDir()

	st, err := Analyze(dir, Options{})
	require.Error(t, err)
	assert.Nil(t, st)
	assert.Contains(t, err.Error(), dir)
}

func TestFileSizeMissing(t *testing.T) {
	_, err := FileSize(filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
}

func TestWordsEqualTokenCount(t *testing.T) {
	content := "one two three\nfour five\n\nsix"
	path := writeFile(t, content)

	st, err := Analyze(path, Options{})
	require.NoError(t, err)

	var total uint64
	for _, n := range st.Freq {
		total += n
	}
	assert.Equal(t, st.Words, total, "word counter must equal summed frequencies")
	assert.Equal(t, fmt.Sprint(uint64(6)), fmt.Sprint(st.Words))
}
