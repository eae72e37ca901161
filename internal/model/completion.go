package model

import "math"

const missingFieldMessage = "required field is not filled in"

// Completion is the derived completion state of an action: a 0-100 percentage
// over the required fields and one error entry per required-but-incomplete
// field, keyed by field id. Optional fields never produce errors.
type Completion struct {
	Percentage int
	Errors     map[string]string
}

func (c Completion) Complete() bool {
	return c.Percentage == 100
}

// Evaluate computes the completion state for a field schema and a partial
// value map. With no required fields the action is trivially complete.
func Evaluate(fields []FieldDef, values map[string]FieldValue) Completion {
	out := Completion{Errors: make(map[string]string)}
	required := 0
	filled := 0
	for _, f := range fields {
		if !f.Required {
			continue
		}
		required++
		if values[f.ID].IsSet(f.Kind) {
			filled++
			continue
		}
		out.Errors[f.ID] = missingFieldMessage
	}
	if required == 0 {
		out.Percentage = 100
		return out
	}
	out.Percentage = int(math.Round(100 * float64(filled) / float64(required)))
	return out
}

// GateStatus reports whether a transition to next is allowed for the action.
// Only transitions into StatusCompleted are gated: they require every
// required field to be filled. Every other transition is legal.
func GateStatus(a Action, next Status) (Completion, bool) {
	c := a.Completion()
	if next != StatusCompleted {
		return c, true
	}
	return c, c.Complete()
}
