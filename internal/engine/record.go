package engine

// Record is a sortable unit of data: a numeric key plus opaque display payload.
//
// Records are snapshot-cloned into the [Sequence] on load, so the engine
// never mutates storage it does not own.
type Record struct {
	ID    string
	Label string
	Key   int
}

// cloneRecords copies a record slice so later engine mutation never
// aliases the caller's storage.
func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// maxKey returns the largest key in records, or 1 when no key is positive
// so height scaling never divides by zero.
func maxKey(records []Record) int {
	max := 0
	for _, r := range records {
		if r.Key > max {
			max = r.Key
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}
