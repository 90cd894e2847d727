package we

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	CommandNotHandledException  = "command-not-handled"
	UnknownContentTypeException = "unknown-content-type"
	InvalidCommandException     = "invalid-command"
	AmbiguousHandlerException   = "ambiguous-handler"
	HandlerPanicException       = "handler-panic"
	CancelledException          = "cancelled"
	InternalErrorException      = "internal-error"
)

const genericMessage = "an internal error occurred"

const maxInnerDepth = 8

// ExceptionModel is the body returned to clients when a command fails. Field
// order is fixed so serialised models are reproducible.
type ExceptionModel struct {
	Type       string          `json:"type"`
	Message    string          `json:"message"`
	Command    string          `json:"command,omitempty"`
	StackTrace string          `json:"stackTrace,omitempty"`
	Inner      *ExceptionModel `json:"inner,omitempty"`
}

// ExceptionConverter decides how a failure is described to clients. Convert
// must always return a model, whatever it is given.
type ExceptionConverter interface {
	Convert(err error) ExceptionModel
}

type ExceptionConverterFunc func(err error) ExceptionModel

func (f ExceptionConverterFunc) Convert(err error) ExceptionModel {
	return f(err)
}

// DefaultExceptionConverter classifies the errors raised by this module.
// Unclassified errors are reported generically unless IncludeDetails is set,
// in which case messages, stack traces and causes are exposed.
type DefaultExceptionConverter struct {
	IncludeDetails bool
}

func (c DefaultExceptionConverter) Convert(err error) (model ExceptionModel) {
	defer func() {
		if r := recover(); r != nil {
			model = ExceptionModel{Type: InternalErrorException, Message: genericMessage}
		}
	}()

	model = c.convert(err, 0)
	return model.valid()
}

func (c DefaultExceptionConverter) convert(err error, depth int) ExceptionModel {
	if err == nil {
		return ExceptionModel{Type: InternalErrorException, Message: genericMessage}
	}

	model := classify(err)
	if !c.IncludeDetails {
		return model
	}

	model.Message = err.Error()
	model.StackTrace = stackTraceOf(err)

	if depth < maxInnerDepth {
		if inner := errors.Unwrap(err); inner != nil {
			m := c.convert(inner, depth+1)
			model.Inner = &m
		}
	}

	return model
}

// valid replaces invalid UTF-8 so the model survives a JSON round trip
// unchanged.
func (m ExceptionModel) valid() ExceptionModel {
	m.Type = strings.ToValidUTF8(m.Type, "\uFFFD")
	m.Message = strings.ToValidUTF8(m.Message, "\uFFFD")
	m.Command = strings.ToValidUTF8(m.Command, "\uFFFD")
	m.StackTrace = strings.ToValidUTF8(m.StackTrace, "\uFFFD")
	if m.Inner != nil {
		inner := m.Inner.valid()
		m.Inner = &inner
	}
	return m
}

func classify(err error) ExceptionModel {
	var notHandled *CommandNotHandledError
	var unknown *UnknownContentTypeError
	var decode *DecodeError
	var ambiguous *AmbiguousHandlerError
	var panicked *HandlerPanicError

	switch {
	case errors.As(err, &notHandled):
		return ExceptionModel{Type: CommandNotHandledException, Message: notHandled.Error(), Command: notHandled.Command.String()}
	case errors.As(err, &unknown):
		return ExceptionModel{Type: UnknownContentTypeException, Message: unknown.Error()}
	case errors.As(err, &decode):
		return ExceptionModel{Type: InvalidCommandException, Message: decode.Error(), Command: decode.Command.String()}
	case errors.As(err, &ambiguous):
		return ExceptionModel{Type: AmbiguousHandlerException, Message: ambiguous.Error(), Command: ambiguous.Command.String()}
	case errors.As(err, &panicked):
		return ExceptionModel{Type: HandlerPanicException, Message: genericMessage, Command: panicked.Command.String()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExceptionModel{Type: CancelledException, Message: "the request was cancelled"}
	default:
		return ExceptionModel{Type: InternalErrorException, Message: genericMessage}
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type stringStackTracer interface {
	StackTrace() string
}

func stackTraceOf(err error) string {
	switch e := err.(type) {
	case stackTracer:
		return strings.TrimSpace(fmt.Sprintf("%+v", e.StackTrace()))
	case stringStackTracer:
		return e.StackTrace()
	default:
		return ""
	}
}
