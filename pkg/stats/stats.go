// Package stats aggregates per-file statistics: line, word and byte
// counts plus a word frequency table.
//
// Analysis reads the input line by line and feeds each line through
// pkg/scan. The byte count is determined independently of the token
// scan (see FileSize), so it always reflects the true octet length of
// the file including line terminators.
package stats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/filestats/pkg/scan"
)

// FrequencyTable maps a word token to its occurrence count.
type FrequencyTable map[string]uint64

// Add increments the count for word, inserting it with count 1 if
// absent. Counts saturate at MaxUint64 instead of wrapping.
func (t FrequencyTable) Add(word string) {
	if c := t[word]; c < math.MaxUint64 {
		t[word] = c + 1
	}
}

// Merge adds every count in other into t, saturating on overflow.
func (t FrequencyTable) Merge(other FrequencyTable) {
	for word, n := range other {
		if c := t[word]; c > math.MaxUint64-n {
			t[word] = math.MaxUint64
		} else {
			t[word] = c + n
		}
	}
}

// Stats holds the aggregate results of one analysis run. It is built
// once per run and not mutated after Analyze returns.
type Stats struct {
	Lines uint64
	Words uint64
	Bytes uint64
	Freq  FrequencyTable
}

// Options controls a single Analyze call.
//
// Workers > 1 enables internal fan-out over line batches. The merged
// result is equivalent to the sequential one: same counts, so the
// final ranking is unaffected.
type Options struct {
	CaseSensitive bool
	Workers       int
}

// Analyze reads the file at path and returns its statistics. The file
// is closed on every return path. On open or read failure the error
// names the path and no partial Stats is returned.
func Analyze(path string, opts Options) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReaderSize(f, 64*1024)

	var st *Stats
	if opts.Workers > 1 {
		st, err = analyzeParallel(br, opts)
	} else {
		st, err = analyzeSequential(br, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %s: %w", path, err)
	}

	// Bytes comes from an independent measurement, not from the line
	// scan, so it includes line terminators regardless of how the
	// scan split the content.
	size, err := FileSize(path)
	if err != nil {
		return nil, err
	}
	st.Bytes = size

	return st, nil
}

func analyzeSequential(br *bufio.Reader, opts Options) (*Stats, error) {
	st := &Stats{Freq: make(FrequencyTable)}
	sc := scan.New(nil, opts.CaseSensitive)

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			st.Lines++
			aggregateLine(st, sc, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return st, nil
			}
			return nil, err
		}
	}
}

// lineBatchSize is the number of lines handed to a worker at once.
const lineBatchSize = 256

func analyzeParallel(br *bufio.Reader, opts Options) (*Stats, error) {
	batches := make(chan [][]byte, opts.Workers)
	partials := make([]*Stats, opts.Workers)

	var g errgroup.Group
	for i := range opts.Workers {
		g.Go(func() error {
			local := &Stats{Freq: make(FrequencyTable)}
			sc := scan.New(nil, opts.CaseSensitive)
			for batch := range batches {
				for _, line := range batch {
					local.Lines++
					aggregateLine(local, sc, line)
				}
			}
			partials[i] = local
			return nil
		})
	}

	// ReadBytes returns a freshly allocated slice per line, so lines
	// can be handed to workers without copying.
	var readErr error
	batch := make([][]byte, 0, lineBatchSize)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			batch = append(batch, line)
			if len(batch) == lineBatchSize {
				batches <- batch
				batch = make([][]byte, 0, lineBatchSize)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}
	if len(batch) > 0 {
		batches <- batch
	}
	close(batches)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}

	merged := &Stats{Freq: make(FrequencyTable)}
	for _, p := range partials {
		merged.Lines = satAdd(merged.Lines, p.Lines)
		merged.Words = satAdd(merged.Words, p.Words)
		merged.Freq.Merge(p.Freq)
	}
	return merged, nil
}

func aggregateLine(st *Stats, sc *scan.Scanner, line []byte) {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	sc.Reset(line)
	for tok, ok := sc.Next(); ok; tok, ok = sc.Next() {
		st.Words = satAdd(st.Words, 1)
		st.Freq.Add(tok)
	}
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// fallbackChunkSize is the read size used when metadata is unusable.
const fallbackChunkSize = 16 * 1024

// FileSize returns the exact on-disk size of path in bytes.
//
// The primary strategy queries filesystem metadata. When that fails or
// reports a non-regular file (some virtual filesystems expose readable
// streams without a reliable size), the fallback re-reads the file in
// binary chunks and sums the bytes actually read.
func FileSize(path string) (uint64, error) {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		if size, err := safecast.Conv[uint64](fi.Size()); err == nil {
			return size, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	total, err := sumReader(f)
	if err != nil {
		return 0, fmt.Errorf("cannot read input file %s: %w", path, err)
	}
	return total, nil
}

// sumReader counts the bytes readable from r until EOF.
func sumReader(r io.Reader) (uint64, error) {
	var total uint64
	buf := make([]byte, fallbackChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			count, cerr := safecast.Conv[uint64](n)
			if cerr != nil {
				return 0, cerr
			}
			total += count
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return 0, err
		}
	}
}
