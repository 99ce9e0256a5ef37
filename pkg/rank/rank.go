// Package rank selects the highest-count words from a frequency table.
package rank

import "container/heap"

// Entry is one ranked word with its occurrence count.
type Entry struct {
	Word  string
	Count uint64
}

// Top returns the k highest-count entries from freq in rank order:
// count descending, ties broken by word ascending in byte order. The
// ordering is total, so the output is identical across runs for the
// same table and k. If freq has fewer than k entries all of them are
// returned; k <= 0 returns nil.
//
// A bounded min-heap keeps selection at O(N log K) instead of sorting
// the whole table; the weakest entry sits at the root so it is the
// first evicted when a better one arrives.
func Top(freq map[string]uint64, k int) []Entry {
	if k <= 0 || len(freq) == 0 {
		return nil
	}
	if k > len(freq) {
		k = len(freq)
	}

	h := make(entryHeap, 0, k)
	for word, count := range freq {
		e := Entry{Word: word, Count: count}
		if len(h) < k {
			heap.Push(&h, e)
		} else if outranks(e, h[0]) {
			h[0] = e
			heap.Fix(&h, 0)
		}
	}

	// Popping yields weakest-first; fill the result back to front.
	out := make([]Entry, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Entry)
	}
	return out
}

// outranks reports whether a places strictly ahead of b in the output
// order: higher count first, then the lexicographically smaller word.
func outranks(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Word < b.Word
}

// entryHeap is a min-heap with the weakest-ranked entry at the root.
type entryHeap []Entry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return outranks(h[j], h[i]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
