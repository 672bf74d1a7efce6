package robinhood

import "fmt"

const (
	// initialShift is the starting power-of-two exponent for the bucket
	// array. The table never shrinks below it.
	initialShift uint8 = 4

	// resizeStep is the number of shift levels added or removed per resize.
	resizeStep uint8 = 1

	// growLoadFactor triggers a grow when an insert would push the load
	// above it.
	growLoadFactor = 0.75

	// shrinkLoadFactor triggers a shrink when a delete would drop the load
	// below it.
	shrinkLoadFactor = 0.10
)

// shouldGrow reports whether the table must grow before another entry is
// added. The pending entry is counted up front.
func (t *Table[V]) shouldGrow() bool {
	return float64(t.count+1) > float64(t.size)*growLoadFactor
}

// shouldShrink reports whether the table must shrink before an entry is
// removed.
func (t *Table[V]) shouldShrink() bool {
	if t.shift <= initialShift {
		return false
	}

	return float64(t.count-1) < float64(t.size)*shrinkLoadFactor
}

// grow raises the sizing by one shift level.
func (t *Table[V]) grow() error {
	return t.resizeTo(t.shift+resizeStep, t.size<<resizeStep)
}

// shrink lowers the sizing by one shift level.
func (t *Table[V]) shrink() error {
	return t.resizeTo(t.shift-resizeStep, t.size>>resizeStep)
}

// resizeTo applies the new sizing, allocates a fresh bucket array and rehashes
// every live entry into it. If the allocation fails the prior sizing is
// restored and the table is left untouched.
func (t *Table[V]) resizeTo(shift uint8, size int) error {
	oldShift, oldSize := t.shift, t.size

	t.shift, t.size = shift, size

	newBuckets, err := t.allocBuckets(t.bucketLen())
	if err != nil {
		t.shift, t.size = oldShift, oldSize
		return fmt.Errorf("robinhood: resize to shift %d: %w", shift, err)
	}

	old := t.buckets
	t.buckets = newBuckets
	t.count = 0

	t.rehash(old)

	return nil
}

// rehash reinserts every entry of the old bucket array under the new sizing.
// Entries are transferred, not copied: only their displacement is reset, the
// cached raw hash is reused. Recursive growth during rehash is possible in
// principle but does not occur under the load-factor policy.
func (t *Table[V]) rehash(old []*entry[V]) {
	for _, e := range old {
		if e != nil {
			e.dist = 0
			_ = t.insert(e)
		}
	}
}
