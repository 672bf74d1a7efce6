// Package robinhood implements an open-addressing hash table mapping string
// keys to generic values, using Robin Hood linear probing with backward-shift
// deletion and automatic grow/shrink resizing.
//
// The table is single-threaded and non-reentrant: no internal locking is
// performed and every operation runs to completion before returning. Callers
// needing concurrency must serialize access externally, for example with one
// exclusive lock per table or by sharding across independent tables.
//
// Stored values are borrowed references. The table never releases them on its
// own; Close optionally visits each surviving value exactly once so the caller
// can reclaim it.
package robinhood

// entry is a live key/value pair. An entry is exclusively owned by exactly one
// bucket slot at any time; probing transfers the pointer between slots, it
// never duplicates an entry.
type entry[V any] struct {
	key   string
	hash  uint64
	value V

	// dist is the number of slots between the slot the entry's hash maps to
	// under the current sizing and the slot it is actually stored in.
	dist uint8
}

// Options contains configuration options for the table.
type Options struct {
	// Hasher computes raw key hashes. Defaults to DJB2.
	Hasher Hasher
}

// DefaultOptions contains the default configuration options for the table.
var DefaultOptions = Options{
	Hasher: DJB2,
}

// Table is a Robin Hood hash table mapping string keys to values of type V.
//
// The zero value is not usable; use New.
type Table[V any] struct {
	shift   uint8
	size    int
	count   int
	buckets []*entry[V]
	hasher  Hasher

	// allocBuckets allocates a bucket array of the given length. The default
	// cannot fail; tests substitute a failing allocator to exercise resize
	// rollback.
	allocBuckets func(n int) ([]*entry[V], error)
}

// New creates an empty table with the initial sizing.
func New[V any](optFns ...func(o *Options)) *Table[V] {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Hasher == nil {
		opts.Hasher = DJB2
	}

	t := &Table[V]{
		shift:  initialShift,
		size:   1 << initialShift,
		hasher: opts.Hasher,
	}

	t.allocBuckets = func(n int) ([]*entry[V], error) {
		return make([]*entry[V], n), nil
	}

	// The default allocator never fails.
	t.buckets, _ = t.allocBuckets(t.bucketLen())

	return t
}

// bucketLen is the bucket array length for the current sizing. The extra
// shift slots are probing headroom: no fresh hash maps into them, they are
// only reached by bounded probing, so probing never wraps around.
func (t *Table[V]) bucketLen() int {
	return t.size + int(t.shift)
}

// home is the slot the hash maps to under the current sizing.
func (t *Table[V]) home(hash uint64) int {
	return int(distribute(hash, t.shift))
}

// probe advances pos from a home slot until it finds an empty slot, a slot
// holding key, or the probe bound. It returns the final position and the
// number of probes taken. The bound equals shift, so pos never leaves the
// bucket array.
func (t *Table[V]) probe(key string, pos int) (int, uint8) {
	var n uint8
	for n < t.shift && t.buckets[pos] != nil && t.buckets[pos].key != key {
		n++
		pos++
	}

	return pos, n
}

// newEntry builds an entry with its hash cached and dist zeroed.
func (t *Table[V]) newEntry(key string, value V) *entry[V] {
	return &entry[V]{
		key:   key,
		hash:  t.hasher(key),
		value: value,
	}
}

// Set adds a key/value pair, replacing the value of an existing equal key.
//
// It returns a non-nil error only if a required grow could not allocate its
// new bucket array; the table is then unchanged except that a grow which
// succeeded before a still-failing insert stays in place. Undoing it would
// buy nothing but rollback complexity, at the cost of the table staying one
// level oversized.
func (t *Table[V]) Set(key string, value V) error {
	e := t.newEntry(key, value)

	if t.shouldGrow() {
		if err := t.grow(); err != nil {
			return err
		}
	}

	return t.insert(e)
}

// insert places e using Robin Hood linear probing: whenever the carried entry
// is further from its home than the occupant of the visited slot, the two are
// swapped and probing continues with the occupant. At rest no entry is
// displaced further than an entry earlier in its own probe sequence.
func (t *Table[V]) insert(e *entry[V]) error {
	rich := e
	pos := t.home(e.hash)

	var n uint8
	for n < t.shift && t.buckets[pos] != nil && t.buckets[pos].key != e.key {
		if cur := t.buckets[pos]; rich.dist > cur.dist {
			t.buckets[pos] = rich
			rich = cur
		}

		rich.dist++
		n++
		pos++
	}

	if n < t.shift {
		if t.buckets[pos] == nil {
			t.count++
		}
		// Occupied means same key: the old entry is replaced and dropped,
		// count unchanged. Its value is the caller's to reclaim.
		t.buckets[pos] = rich

		return nil
	}

	// Probe bound exceeded. Undo the swaps made above so a failed grow leaves
	// the table in its prior valid state, then grow and retry from scratch.
	// The bound rises with shift, so the retry cannot fail the same way.
	t.unwind(e, rich, pos-1)

	if err := t.grow(); err != nil {
		return err
	}

	e.dist = 0

	return t.insert(e)
}

// unwind walks backward from the last swapped position, reverting the
// displacement increments and swaps of a partially completed insertion. poor
// is the entry left in hand when the probe bound was hit; the walk ends once
// the originally inserted entry is back in hand (or at slot 0, which cannot
// happen before that).
func (t *Table[V]) unwind(inserted, poor *entry[V], pos int) {
	for i := pos; ; i-- {
		cur := t.buckets[i]

		// Each step backwards the poor entry gets a bit richer.
		poor.dist--

		if cur.dist > poor.dist {
			t.buckets[i] = poor
			poor = cur
		}

		if poor == inserted || i == 0 {
			break
		}
	}
}

// Get returns the value stored for key. The second result is false if the key
// is absent; absence is not an error.
func (t *Table[V]) Get(key string) (V, bool) {
	pos, n := t.probe(key, t.home(t.hasher(key)))

	if n >= t.shift || t.buckets[pos] == nil {
		var zero V
		return zero, false
	}

	return t.buckets[pos].value, true
}

// Delete removes key and reports whether it did. It returns false if the key
// is absent, or if a triggered shrink could not allocate its new bucket
// array. In the latter case the key is still present: the failure is
// surfaced rather than silently removing without shrinking.
func (t *Table[V]) Delete(key string) bool {
	if t.shouldShrink() {
		if err := t.shrink(); err != nil {
			return false
		}
	}

	pos, n := t.probe(key, t.home(t.hasher(key)))

	if n >= t.shift || t.buckets[pos] == nil {
		return false
	}

	t.removeAt(pos)

	return true
}

// removeAt empties pos and shifts subsequent displaced entries back one slot
// each, stopping at the first empty slot or at an entry already in its home
// slot. No tombstones are left behind, so future probes stay short.
func (t *Table[V]) removeAt(pos int) {
	t.buckets[pos] = nil

	for pos++; pos < len(t.buckets); pos++ {
		e := t.buckets[pos]
		if e == nil || e.dist == 0 {
			break
		}

		e.dist--
		t.buckets[pos-1] = e
		t.buckets[pos] = nil
	}

	t.count--
}

// Len returns the current number of live entries.
func (t *Table[V]) Len() int {
	return t.count
}

// Close releases the table. If visit is non-nil it is called exactly once
// with each surviving value before its entry is dropped.
//
// The table must not be used after Close.
func (t *Table[V]) Close(visit func(value V)) {
	for i, e := range t.buckets {
		if e == nil {
			continue
		}

		if visit != nil {
			visit(e.value)
		}

		t.buckets[i] = nil
	}

	t.buckets = nil
	t.count = 0
}
