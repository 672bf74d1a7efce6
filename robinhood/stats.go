package robinhood

// Stats is a point-in-time snapshot of the table shape. It exposes sizing and
// probing diagnostics only, never the entries themselves.
type Stats struct {
	// Count is the number of live entries.
	Count int

	// BucketCount is the current power-of-two bucket count, excluding the
	// probing headroom slots.
	BucketCount int

	// Shift is the power-of-two exponent of BucketCount. It doubles as the
	// probe bound.
	Shift uint8

	// LoadFactor is Count divided by BucketCount.
	LoadFactor float64

	// MaxProbe is the largest displacement of any live entry.
	MaxProbe uint8
}

// Stats returns statistics about the table.
func (t *Table[V]) Stats() Stats {
	s := Stats{
		Count:       t.count,
		BucketCount: t.size,
		Shift:       t.shift,
	}

	if t.size > 0 {
		s.LoadFactor = float64(t.count) / float64(t.size)
	}

	for _, e := range t.buckets {
		if e != nil && e.dist > s.MaxProbe {
			s.MaxProbe = e.dist
		}
	}

	return s
}
