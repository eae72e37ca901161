package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Simenb123/revy-actions/internal/model"
)

// actionRow is the flat SQLite shape of an action. The field schema and the
// partial value map are stored as JSON columns so the schema can vary per
// action without migrations.
type actionRow struct {
	ID          string
	ScopeID     string
	SortOrder   int
	Status      string
	SubjectArea string
	Name        string
	Description string
	FieldsJSON  string
	ValuesJSON  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func rowFromAction(in model.Action) (actionRow, error) {
	fields := in.Fields
	if fields == nil {
		fields = []model.FieldDef{}
	}
	values := in.Values
	if values == nil {
		values = map[string]model.FieldValue{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return actionRow{}, fmt.Errorf("encode fields: %w", err)
	}
	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return actionRow{}, fmt.Errorf("encode values: %w", err)
	}
	return actionRow{
		ID:          in.ID,
		ScopeID:     in.ScopeID,
		SortOrder:   in.SortOrder,
		Status:      string(in.Status),
		SubjectArea: in.SubjectArea,
		Name:        in.Name,
		Description: in.Description,
		FieldsJSON:  string(fieldsJSON),
		ValuesJSON:  string(valuesJSON),
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}, nil
}

func (r actionRow) toAction() (model.Action, error) {
	out := model.Action{
		ID:          r.ID,
		ScopeID:     r.ScopeID,
		SortOrder:   r.SortOrder,
		Status:      model.Status(r.Status),
		SubjectArea: r.SubjectArea,
		Name:        r.Name,
		Description: r.Description,
		Fields:      []model.FieldDef{},
		Values:      map[string]model.FieldValue{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.FieldsJSON != "" {
		if err := json.Unmarshal([]byte(r.FieldsJSON), &out.Fields); err != nil {
			return model.Action{}, fmt.Errorf("decode fields for %s: %w", r.ID, err)
		}
	}
	if r.ValuesJSON != "" {
		if err := json.Unmarshal([]byte(r.ValuesJSON), &out.Values); err != nil {
			return model.Action{}, fmt.Errorf("decode values for %s: %w", r.ID, err)
		}
	}
	return out, nil
}
