package commands

import (
	"fmt"
	"strings"

	"github.com/Simenb123/revy-actions/internal/model"
)

type Type string

const (
	TypeStatus Type = "status"
	TypeDelete Type = "delete"
	TypeSelect Type = "select"
	TypeFilter Type = "filter"
	TypeGoto   Type = "goto"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type StatusArgs struct {
	Status model.Status
}

type SelectArgs struct {
	All bool
}

// FilterArgs carries only the tokens present in the input; nil pointers
// leave the corresponding facet untouched.
type FilterArgs struct {
	Query       *string
	Status      *string
	SubjectArea *string
	Clear       bool
}

type GotoArgs struct {
	ID string
}

type Command struct {
	Type   Type
	Raw    string
	Status *StatusArgs
	Select *SelectArgs
	Filter *FilterArgs
	Goto   *GotoArgs
}

// Parse turns one palette input line into a typed command. A leading ":"
// from the palette prompt is tolerated.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStatus:
		return parseStatus(input, args)
	case TypeDelete:
		return Command{Type: TypeDelete, Raw: input}, nil
	case TypeSelect:
		return parseSelect(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "status requires a status name"}
	}
	status := model.Status(strings.ToLower(args[0]))
	if !status.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", args[0])}
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Status: status}}, nil
}

func parseSelect(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "select requires all or none"}
	}
	switch strings.ToLower(args[0]) {
	case "all":
		return Command{Type: TypeSelect, Raw: raw, Select: &SelectArgs{All: true}}, nil
	case "none":
		return Command{Type: TypeSelect, Raw: raw, Select: &SelectArgs{All: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("select takes all or none, got %s", args[0])}
	}
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires tokens or clear"}
	}
	out := &FilterArgs{}
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case lower == "clear":
			out.Clear = true
		case strings.HasPrefix(lower, "q:"):
			v := arg[len("q:"):]
			out.Query = &v
		case strings.HasPrefix(lower, "status:"):
			v := strings.ToLower(arg[len("status:"):])
			if v != "" && v != "all" && !model.Status(v).IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status facet: %s", v)}
			}
			out.Status = &v
		case strings.HasPrefix(lower, "area:"):
			v := arg[len("area:"):]
			out.SubjectArea = &v
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter token: %s", arg)}
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: out}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires an action id"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{ID: args[0]}}, nil
}
