package list

import "github.com/Simenb123/revy-actions/internal/model"

// ComputeReorder computes the persisted order updates for a drop of activeID
// onto overID within current (the full scope-wide order, never a filtered
// subset). It returns nil when either id is absent or both are the same
// item. The moved item is removed at its index and reinserted at the target
// index, then the whole list is re-sequenced contiguously: every element is
// assigned sortOrder = position. The full assignment list is emitted, not a
// sparse gap-insert.
func ComputeReorder(activeID, overID string, current []model.Action) []model.OrderUpdate {
	from := indexOf(current, activeID)
	to := indexOf(current, overID)
	if from < 0 || to < 0 || from == to {
		return nil
	}

	next := make([]model.Action, 0, len(current))
	next = append(next, current...)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	tail := make([]model.Action, 0, len(next)-to+1)
	tail = append(tail, moved)
	tail = append(tail, next[to:]...)
	next = append(next[:to], tail...)

	updates := make([]model.OrderUpdate, len(next))
	for i, it := range next {
		updates[i] = model.OrderUpdate{ID: it.ID, SortOrder: i}
	}
	return updates
}

// ApplyOrder re-sorts items so they follow the given updates. Items without
// an update keep their relative position after all updated items. Used to
// reflect a reorder locally before the write-back settles.
func ApplyOrder(items []model.Action, updates []model.OrderUpdate) []model.Action {
	order := make(map[string]int, len(updates))
	for _, u := range updates {
		order[u.ID] = u.SortOrder
	}
	out := make([]model.Action, len(items))
	copy(out, items)
	for i := range out {
		if pos, ok := order[out[i].ID]; ok {
			out[i].SortOrder = pos
		}
	}
	sortActions(out)
	return out
}

func sortActions(items []model.Action) {
	// sortOrder is unique-enough, ties broken by id.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && lessAction(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

func lessAction(a, b model.Action) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}

func indexOf(items []model.Action, id string) int {
	if id == "" {
		return -1
	}
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// NearestRow resolves a pointer position to a drop target using
// nearest-center collision detection: the row whose vertical center is
// closest to pointerY wins. tops and heights describe the rendered rows in
// order; the return value is an index into them, or -1 when there are no
// rows.
func NearestRow(pointerY int, tops, heights []int) int {
	best := -1
	bestDist := 0
	for i := range tops {
		h := 1
		if i < len(heights) && heights[i] > 0 {
			h = heights[i]
		}
		center := tops[i] + h/2
		dist := pointerY - center
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
