package list

// Virtualizer computes which rows to mount for a scrolling list with dynamic
// row heights. Rows start at an estimated height; the real height is recorded
// after the row has been rendered and the placeholder layout corrects itself
// on the next window computation.
type Virtualizer struct {
	estimate int
	overscan int
	measured map[string]int
}

func NewVirtualizer(estimatedRowHeight, overscan int) *Virtualizer {
	if estimatedRowHeight < 1 {
		estimatedRowHeight = 1
	}
	if overscan < 0 {
		overscan = 0
	}
	return &Virtualizer{
		estimate: estimatedRowHeight,
		overscan: overscan,
		measured: make(map[string]int),
	}
}

// SetMeasured records the rendered height of a row. Non-positive heights are
// ignored.
func (v *Virtualizer) SetMeasured(id string, height int) {
	if id == "" || height <= 0 {
		return
	}
	v.measured[id] = height
}

// Reset drops all measurements, e.g. after a width change invalidates them.
func (v *Virtualizer) Reset() {
	v.measured = make(map[string]int)
}

// RowHeight returns the measured height for id, or the estimate.
func (v *Virtualizer) RowHeight(id string) int {
	if h, ok := v.measured[id]; ok {
		return h
	}
	return v.estimate
}

// TotalHeight is the reserved scroll height for the whole list.
func (v *Virtualizer) TotalHeight(ids []string) int {
	total := 0
	for _, id := range ids {
		total += v.RowHeight(id)
	}
	return total
}

// Window is the mounted slice of rows: indexes [Start, End) are rendered,
// TopPad and BottomPad reserve the scroll height of the unmounted rows.
type Window struct {
	Start     int
	End       int
	TopPad    int
	BottomPad int
}

// Window computes the mounted range for a scroll offset and viewport height,
// extended by the overscan margin on both sides.
func (v *Virtualizer) Window(ids []string, scroll, viewportHeight int) Window {
	if len(ids) == 0 {
		return Window{}
	}
	if scroll < 0 {
		scroll = 0
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	first := len(ids)
	last := -1
	y := 0
	for i, id := range ids {
		h := v.RowHeight(id)
		if y+h > scroll && y < scroll+viewportHeight {
			if i < first {
				first = i
			}
			last = i
		}
		y += h
		if y >= scroll+viewportHeight && last >= 0 {
			break
		}
	}
	if last < 0 {
		// Scrolled past the end; mount the final row so the view is never empty.
		first = len(ids) - 1
		last = len(ids) - 1
	}

	first -= v.overscan
	if first < 0 {
		first = 0
	}
	last += v.overscan
	if last > len(ids)-1 {
		last = len(ids) - 1
	}

	w := Window{Start: first, End: last + 1}
	for i := 0; i < first; i++ {
		w.TopPad += v.RowHeight(ids[i])
	}
	for i := last + 1; i < len(ids); i++ {
		w.BottomPad += v.RowHeight(ids[i])
	}
	return w
}

// RowGeometry returns the top offset and height of every row, for pointer
// collision detection during a drag.
func (v *Virtualizer) RowGeometry(ids []string) (tops, heights []int) {
	tops = make([]int, len(ids))
	heights = make([]int, len(ids))
	y := 0
	for i, id := range ids {
		h := v.RowHeight(id)
		tops[i] = y
		heights[i] = h
		y += h
	}
	return tops, heights
}
