// Package commands parses the palette input line into typed commands
// and dispatches them to configured handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeAssist Type = "ai"
	TypeGoto   Type = "goto"
	TypeRange  Type = "range"
	TypeRetag  Type = "retag"
	TypeDrop   Type = "drop"
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

// AddArgs carries the raw quick-entry line, optionally suffixed with
// "repeat:<days>" to make the task recurring.
type AddArgs struct {
	Line       string
	RepeatDays int
}

type AssistArgs struct {
	Prompt string
}

type GotoArgs struct {
	When string
}

type RangeArgs struct {
	Days int
}

type RetagArgs struct {
	From string
	To   string
}

type DropArgs struct {
	Title string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Assist *AssistArgs
	Goto   *GotoArgs
	Range  *RangeArgs
	Retag  *RetagArgs
	Drop   *DropArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	rest = strings.TrimSpace(rest)

	switch Type(strings.ToLower(head)) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeAssist:
		return parseAssist(input, rest)
	case TypeGoto:
		return parseGoto(input, rest)
	case TypeRange:
		return parseRange(input, rest)
	case TypeRetag:
		return parseRetag(input, rest)
	case TypeDrop:
		return parseDrop(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task line"}
	}
	repeat := 0
	fields := strings.Fields(rest)
	last := fields[len(fields)-1]
	if v, ok := strings.CutPrefix(strings.ToLower(last), "repeat:"); ok {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid repeat interval: %s", last)}
		}
		repeat = days
		rest = strings.TrimSpace(strings.TrimSuffix(rest, last))
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Line: rest, RepeatDays: repeat}}, nil
}

func parseAssist(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "ai requires a prompt"}
	}
	return Command{Type: TypeAssist, Raw: raw, Assist: &AssistArgs{Prompt: rest}}, nil
}

func parseGoto(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a day"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{When: strings.ToLower(rest)}}, nil
}

func parseRange(raw, rest string) (Command, error) {
	days, err := strconv.Atoi(rest)
	if err != nil || days <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "range requires a positive day count"}
	}
	return Command{Type: TypeRange, Raw: raw, Range: &RangeArgs{Days: days}}, nil
}

func parseRetag(raw, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "retag requires old and new tag"}
	}
	return Command{Type: TypeRetag, Raw: raw, Retag: &RetagArgs{From: fields[0], To: fields[1]}}, nil
}

func parseDrop(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "drop requires a habit title"}
	}
	return Command{Type: TypeDrop, Raw: raw, Drop: &DropArgs{Title: rest}}, nil
}
