package rank

import (
	"container/heap"
	"sort"
)

// Kind classifies how a result matched. Higher values outrank lower ones
// regardless of score.
type Kind int

const (
	KindFuzzy Kind = iota
	KindExtension
	KindExact
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindExtension:
		return "ext"
	default:
		return "fuzzy"
	}
}

// Result is a single scored search hit. Results are ephemeral; nothing here
// is persisted.
type Result struct {
	Path  string
	Score int
	Kind  Kind
	IsDir bool
}

// Less reports whether a ranks strictly before b: match kind first, then
// score descending, then shorter path, then lexicographic path. The ordering
// is total for distinct paths, so result order is stable across runs.
func Less(a, b Result) bool {
	if a.Kind != b.Kind {
		return a.Kind > b.Kind
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if len(a.Path) != len(b.Path) {
		return len(a.Path) < len(b.Path)
	}

	return a.Path < b.Path
}

// TopK maintains the best K results seen so far with O(log k) insertion.
// A limit of zero or less keeps everything.
type TopK struct {
	limit int
	h     resultHeap
}

func NewTopK(limit int) *TopK {
	return &TopK{limit: limit}
}

// Insert offers a result. When the structure is full the worst kept result
// is evicted if the newcomer ranks above it; otherwise the newcomer is
// dropped.
func (t *TopK) Insert(r Result) {
	if t.limit > 0 && t.h.Len() >= t.limit {
		if !Less(r, t.h.items[0]) {
			return
		}
		t.h.items[0] = r
		heap.Fix(&t.h, 0)
		return
	}

	heap.Push(&t.h, r)
}

func (t *TopK) Len() int {
	return t.h.Len()
}

// Sorted returns the kept results best-first. The heap itself is untouched;
// callers may keep inserting.
func (t *TopK) Sorted() []Result {
	out := make([]Result, len(t.h.items))
	copy(out, t.h.items)
	sort.Slice(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})

	return out
}

// resultHeap is a min-heap keyed by rank order with the worst kept result at
// the root, which makes eviction of the loser constant-time.
type resultHeap struct {
	items []Result
}

func (h resultHeap) Len() int { return len(h.items) }

func (h resultHeap) Less(i, j int) bool {
	// Inverted: the root is the worst ranked item.
	return Less(h.items[j], h.items[i])
}

func (h resultHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *resultHeap) Push(x any) {
	h.items = append(h.items, x.(Result))
}

func (h *resultHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]

	return item
}
