package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Status func(StatusArgs) (Result, error)
	Delete func() (Result, error)
	Select func(SelectArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
}

// Execute dispatches a parsed command to the matching handler.
func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "status handler not configured"}
		}
		return handlers.Status(*cmd.Status)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete()
	case TypeSelect:
		if handlers.Select == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "select handler not configured"}
		}
		return handlers.Select(*cmd.Select)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "filter handler not configured"}
		}
		return handlers.Filter(*cmd.Filter)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command type: %s", cmd.Type)}
	}
}
