// Package list implements the ordered selectable item list engine: filtering,
// selection tracking, render-strategy selection, virtualization windowing,
// reorder computation and bulk mutation coordination. It has no UI or storage
// dependencies and owns no goroutines.
package list

import (
	"strings"

	"github.com/Simenb123/revy-actions/internal/model"
)

// FacetAll is the wildcard value for the status and subject-area facets.
// An empty facet means the same thing.
const FacetAll = "all"

type FilterState struct {
	Query       string
	Status      string
	SubjectArea string
	// Extra maps field ids to required substrings of the field's text value.
	Extra map[string]string
}

func facetActive(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, FacetAll)
}

// IsNeutral reports whether the filter is at its default value, i.e. the user
// is looking at the canonical unfiltered order. Reordering is only offered in
// this state.
func (s FilterState) IsNeutral() bool {
	return strings.TrimSpace(s.Query) == "" &&
		!facetActive(s.Status) &&
		!facetActive(s.SubjectArea) &&
		len(s.Extra) == 0
}

// Filter returns the items visible under state, preserving input order.
// An item is visible iff every specified facet matches; the query matches
// case-insensitively against name and description substrings. Pure, O(n);
// callers debounce the query before invoking.
func Filter(items []model.Action, state FilterState) []model.Action {
	if state.IsNeutral() {
		return items
	}
	query := strings.ToLower(strings.TrimSpace(state.Query))
	out := make([]model.Action, 0, len(items))
	for _, it := range items {
		if !matches(it, state, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(it model.Action, state FilterState, query string) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(it.Name), query) &&
		!strings.Contains(strings.ToLower(it.Description), query) {
		return false
	}
	if facetActive(state.Status) && string(it.Status) != strings.TrimSpace(state.Status) {
		return false
	}
	if facetActive(state.SubjectArea) && it.SubjectArea != strings.TrimSpace(state.SubjectArea) {
		return false
	}
	for fieldID, want := range state.Extra {
		if !facetActive(want) {
			continue
		}
		have := strings.ToLower(it.Values[fieldID].Text)
		if !strings.Contains(have, strings.ToLower(strings.TrimSpace(want))) {
			return false
		}
	}
	return true
}

// VisibleIDs is a convenience for selection operations scoped to the
// currently filtered subset.
func VisibleIDs(items []model.Action) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
