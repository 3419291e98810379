package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Assist func(AssistArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
	Range  func(RangeArgs) (Result, error)
	Retag  func(RetagArgs) (Result, error)
	Drop   func(DropArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeAssist:
		if handlers.Assist == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "ai handler not configured"}
		}
		return handlers.Assist(*cmd.Assist)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	case TypeRange:
		if handlers.Range == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "range handler not configured"}
		}
		return handlers.Range(*cmd.Range)
	case TypeRetag:
		if handlers.Retag == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "retag handler not configured"}
		}
		return handlers.Retag(*cmd.Retag)
	case TypeDrop:
		if handlers.Drop == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "drop handler not configured"}
		}
		return handlers.Drop(*cmd.Drop)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
