package model

import "strings"

type FieldKind string

const (
	FieldText      FieldKind = "text"
	FieldLongText  FieldKind = "longtext"
	FieldEnum      FieldKind = "enum"
	FieldBoolean   FieldKind = "boolean"
	FieldMultiEnum FieldKind = "multi_enum"
)

func (k FieldKind) IsValid() bool {
	switch k {
	case FieldText, FieldLongText, FieldEnum, FieldBoolean, FieldMultiEnum:
		return true
	default:
		return false
	}
}

type FieldDef struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// FieldValue carries the value for one field. Which member is meaningful
// depends on the field kind: Text for text/longtext/enum, Bool for boolean,
// List for multi_enum.
type FieldValue struct {
	Text string   `json:"text,omitempty"`
	Bool *bool    `json:"bool,omitempty"`
	List []string `json:"list,omitempty"`
}

// IsSet reports whether the value counts as present for the given kind.
// A boolean is set once it has been answered either way; a multi_enum must
// be non-empty.
func (v FieldValue) IsSet(kind FieldKind) bool {
	switch kind {
	case FieldText, FieldLongText, FieldEnum:
		return strings.TrimSpace(v.Text) != ""
	case FieldBoolean:
		return v.Bool != nil
	case FieldMultiEnum:
		return len(v.List) > 0
	default:
		return false
	}
}

func TextValue(s string) FieldValue { return FieldValue{Text: s} }

func BoolValue(b bool) FieldValue { return FieldValue{Bool: &b} }

func ListValue(items ...string) FieldValue { return FieldValue{List: items} }
