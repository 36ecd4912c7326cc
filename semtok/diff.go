package semtok

// Edit is a splice against a previously published packed token array:
// remove DeleteCount elements at Start, then insert Data at that position.
// Start and Start+DeleteCount always fall on token-group boundaries
// (multiples of 5); clients decode by re-grouping in fives, so an edit that
// split a 5-tuple would corrupt every token after it.
type Edit struct {
	Start       uint32
	DeleteCount uint32
	Data        []uint32
}

// Diff computes the edits that transform prev into next. It trims the
// longest common prefix and suffix at token-group granularity and replaces
// the middle, yielding at most one edit. The script is correct, not
// minimal; for the dominant case of a localized document change it still
// collapses to the few groups around the change. Equal arrays produce an
// empty (non-nil) script.
func Diff(prev, next []uint32) []Edit {
	prevGroups := len(prev) / 5
	nextGroups := len(next) / 5

	limit := prevGroups
	if nextGroups < limit {
		limit = nextGroups
	}
	head := 0
	for head < limit && groupEqual(prev, next, head, head) {
		head++
	}
	tail := 0
	for tail < limit-head && groupEqual(prev, next, prevGroups-1-tail, nextGroups-1-tail) {
		tail++
	}

	if head == prevGroups && head == nextGroups {
		return []Edit{}
	}

	start := uint32(head * 5)
	deleteCount := uint32((prevGroups - head - tail) * 5)
	data := next[head*5 : (nextGroups-tail)*5]
	return []Edit{{
		Start:       start,
		DeleteCount: deleteCount,
		Data:        append([]uint32(nil), data...),
	}}
}

func groupEqual(a, b []uint32, ai, bi int) bool {
	ao, bo := ai*5, bi*5
	for k := 0; k < 5; k++ {
		if a[ao+k] != b[bo+k] {
			return false
		}
	}
	return true
}

// Apply replays an edit script against a packed array, left-to-right with
// splice semantics, and returns the resulting array. Primarily a test and
// client-side helper; servers only produce scripts.
func Apply(prev []uint32, edits []Edit) []uint32 {
	out := append([]uint32(nil), prev...)
	for _, e := range edits {
		tail := append([]uint32(nil), out[e.Start+e.DeleteCount:]...)
		out = append(out[:e.Start], e.Data...)
		out = append(out, tail...)
	}
	return out
}
