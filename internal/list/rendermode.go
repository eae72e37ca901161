package list

// RenderMode selects how the list body is rendered. The three modes are
// mutually exclusive by construction: this value is computed once per render
// from the filter state, so Reorderable and Virtualized can never both be
// active.
type RenderMode int

const (
	// ModePlain renders every visible row statically. Only offered for
	// short lists when reordering is unavailable.
	ModePlain RenderMode = iota
	// ModeVirtualized mounts only the rows intersecting the viewport plus
	// an overscan margin; any active filter forces this mode so the
	// persisted order stays read-only while a filter hides neighbors.
	ModeVirtualized
	// ModeReorderable renders the unfiltered, scope-wide order as a
	// draggable list. Offered only while the filter is neutral.
	ModeReorderable
)

func (m RenderMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeVirtualized:
		return "virtualized"
	case ModeReorderable:
		return "reorderable"
	default:
		return "unknown"
	}
}

// ModeFor computes the render mode for one frame. reorderable disables
// drag-reorder globally (e.g. a read-only scope); total is the unfiltered
// item count; plainThreshold is the largest list plain mode may carry.
func ModeFor(state FilterState, total, plainThreshold int, reorderable bool) RenderMode {
	if !state.IsNeutral() {
		return ModeVirtualized
	}
	if reorderable {
		return ModeReorderable
	}
	if total <= plainThreshold {
		return ModePlain
	}
	return ModeVirtualized
}
