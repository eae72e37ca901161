package list

import "sort"

// Selection tracks which item ids are selected. It is session state, never
// persisted. An id that is filtered out of view keeps its selected flag; it
// becomes inert rather than cleared.
type Selection struct {
	ids map[string]bool
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

func (s *Selection) Toggle(id string) {
	if id == "" {
		return
	}
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

func (s *Selection) Count() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
}

// Remove drops the given ids from the selection, leaving all others alone.
func (s *Selection) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// IDs returns the selected ids in a stable sorted order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AllVisibleSelected reports whether every visible id is selected. It is
// false for an empty visible set.
func (s *Selection) AllVisibleSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.ids[id] {
			return false
		}
	}
	return true
}

// ToggleAllVisible selects every visible id, or, when all of them are already
// selected, deselects exactly the visible ids. Selections outside the visible
// set are preserved either way.
func (s *Selection) ToggleAllVisible(visible []string) {
	if s.AllVisibleSelected(visible) {
		s.Remove(visible...)
		return
	}
	for _, id := range visible {
		if id != "" {
			s.ids[id] = true
		}
	}
}
