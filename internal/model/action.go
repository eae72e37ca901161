package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus    = errors.New("model: invalid action status")
	ErrInvalidFieldKind = errors.New("model: invalid field kind")
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusReviewed   Status = "reviewed"
	StatusApproved   Status = "approved"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusReviewed, StatusApproved:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusReviewed:
		return "Reviewed"
	case StatusApproved:
		return "Approved"
	default:
		return string(s)
	}
}

// Statuses returns the fixed status set in its advisory progression order.
// Any transition between members is legal; the order is display sugar only.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusReviewed, StatusApproved}
}

type Action struct {
	ID          string
	ScopeID     string
	SortOrder   int
	Status      Status
	SubjectArea string
	Name        string
	Description string
	Fields      []FieldDef
	Values      map[string]FieldValue
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a Action) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: action id is required")
	}
	if strings.TrimSpace(a.ScopeID) == "" {
		return errors.New("model: action scope id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("model: action name is required")
	}
	if a.SortOrder < 0 {
		return fmt.Errorf("model: action sort order must not be negative, got %d", a.SortOrder)
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if a.CreatedAt.IsZero() {
		return errors.New("model: action created_at is required")
	}
	seen := make(map[string]bool, len(a.Fields))
	for _, f := range a.Fields {
		if strings.TrimSpace(f.ID) == "" {
			return errors.New("model: field id is required")
		}
		if seen[f.ID] {
			return fmt.Errorf("model: duplicate field id %q", f.ID)
		}
		seen[f.ID] = true
		if !f.Kind.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidFieldKind, f.Kind)
		}
	}
	for id := range a.Values {
		if !seen[id] {
			return fmt.Errorf("model: value for unknown field %q", id)
		}
	}
	return nil
}

// OrderUpdate is one persisted sort-order assignment within a scope.
type OrderUpdate struct {
	ID        string
	SortOrder int
}

// Completion derives the completion state from the action's required fields.
// It is recomputed on every call and never stored.
func (a Action) Completion() Completion {
	return Evaluate(a.Fields, a.Values)
}
