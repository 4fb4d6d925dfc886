package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeSearch   Type = "search"
	TypeFilter   Type = "filter"
	TypeCategory Type = "category"
	TypeClear    Type = "clear"
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

// AddArgs carries the task text plus optional cat:/due:/pri: tokens parsed
// from the trailing words, e.g. "add buy milk cat:errands pri:high".
type AddArgs struct {
	Text     string
	Category string
	Due      string
	Priority string
}

type SearchArgs struct {
	Query string
}

type FilterArgs struct {
	Status string
}

type CategoryArgs struct {
	Name string
}

type ClearArgs struct {
	Scope string
}

const (
	ClearScopeCompleted = "completed"
	ClearScopeAll       = "all"
)

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Search   *SearchArgs
	Filter   *FilterArgs
	Category *CategoryArgs
	Clear    *ClearArgs
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

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		return parseSearch(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	add := &AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "cat:"):
			add.Category = strings.TrimSpace(arg[len("cat:"):])
		case strings.HasPrefix(lower, "due:"):
			add.Due = strings.TrimSpace(arg[len("due:"):])
		case strings.HasPrefix(lower, "pri:"):
			add.Priority = strings.TrimSpace(arg[len("pri:"):])
		default:
			words = append(words, arg)
		}
	}
	add.Text = strings.TrimSpace(strings.Join(words, " "))
	if add.Text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: add}, nil
}

func parseSearch(raw string, args []string) (Command, error) {
	// An empty query is allowed: it clears the search filter.
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Query: strings.TrimSpace(strings.Join(args, " "))}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of: all, active, completed"}
	}
	status := strings.ToLower(args[0])
	switch status {
	case "all", "active", "completed":
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Status: status}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status filter: %s", args[0])}
	}
}

func parseCategory(raw string, args []string) (Command, error) {
	// No argument clears the active category filter.
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: strings.TrimSpace(strings.Join(args, " "))}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a scope: completed or all"}
	}
	scope := strings.ToLower(args[0])
	if scope != ClearScopeCompleted && scope != ClearScopeAll {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown clear scope: %s", args[0])}
	}
	return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Scope: scope}}, nil
}
