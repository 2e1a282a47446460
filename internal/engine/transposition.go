package engine

// Entry is one transposition table slot: the position key it was computed
// for, the search depth of the cached score, and the score itself.
type Entry struct {
	Key   uint64
	Depth int8
	Score int32
}

// Table caches search scores by Zobrist position key. Its lifetime is one
// search invocation: the owning searcher allocates it, probes and stores
// single-threaded, and drops it when the position changes. A hit requires
// the cached depth to be at least the requested depth; the full key is
// compared on probe, so a bucket collision degrades to a miss rather than a
// wrong score.
type Table struct {
	entries []Entry
	mask    uint64

	probes uint64
	hits   uint64
}

const entrySize = 16

// NewTable creates a table of roughly the given size in MB, rounded down to
// a power-of-two entry count for mask indexing.
func NewTable(sizeMB int) *Table {
	if sizeMB < 1 {
		sizeMB = 1
	}
	n := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	return &Table{
		entries: make([]Entry, n),
		mask:    n - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a cached score computed at depth >= the requested depth.
func (t *Table) Probe(key uint64, depth int) (int, bool) {
	t.probes++
	e := &t.entries[key&t.mask]
	if e.Key == key && int(e.Depth) >= depth && e.Depth > 0 {
		t.hits++
		return int(e.Score), true
	}
	return 0, false
}

// Store saves a score, replacing shallower or foreign entries.
func (t *Table) Store(key uint64, depth, score int) {
	if depth < 1 {
		depth = 1
	}
	e := &t.entries[key&t.mask]
	if e.Key != key || int(e.Depth) <= depth {
		e.Key = key
		e.Depth = int8(depth)
		e.Score = int32(score)
	}
}

// Clear wipes every entry.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.probes = 0
	t.hits = 0
}

// HitRate returns the probe hit rate as a percentage.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}

// Size returns the number of slots.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries))
}
