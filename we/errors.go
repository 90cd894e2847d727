package we

import (
	"fmt"
	"strings"
)

func UnexpectedCommand(command Command) error {
	return &UnexpectedCommandError{Command: CommandNameOf(command)}
}

type UnexpectedCommandError struct {
	Command CommandName
}

func (e *UnexpectedCommandError) Error() string {
	return fmt.Sprintf("unexpected command %s", e.Command)
}

func CommandNotHandled(command CommandName) *CommandNotHandledError {
	return &CommandNotHandledError{Command: command}
}

// CommandNotHandledError describes a command nobody is registered to handle.
// Dispatch reports the condition as an Outcome; the error exists so it can be
// described to clients.
type CommandNotHandledError struct {
	Command CommandName
}

func (e *CommandNotHandledError) Error() string {
	return fmt.Sprintf("no handler found for command %s", e.Command)
}

type DuplicateHandlerError struct {
	Command CommandName
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("multiple handlers registered for command %s", e.Command)
}

type AmbiguousHandlerError struct {
	Command CommandName
	Matches int
}

func (e *AmbiguousHandlerError) Error() string {
	return fmt.Sprintf("%d handlers resolved for command %s", e.Matches, e.Command)
}

type UnknownContentTypeError struct {
	ContentType string
}

func (e *UnknownContentTypeError) Error() string {
	return fmt.Sprintf("no command registered for content type %q", e.ContentType)
}

type DuplicateContentTypeError struct {
	ContentType string
}

func (e *DuplicateContentTypeError) Error() string {
	return fmt.Sprintf("content type %q is already registered", e.ContentType)
}

type DecodeError struct {
	Command CommandName
	Cause   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode command %s: %v", e.Command, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

type HandlerPanicError struct {
	Command CommandName
	Value   any
	Stack   string
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler for command %s panicked: %v", e.Command, e.Value)
}

func (e *HandlerPanicError) StackTrace() string {
	return strings.TrimSpace(e.Stack)
}
