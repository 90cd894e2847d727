package we

import (
	"fmt"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "we-commands"

type OutcomeStatus int

const (
	Dispatched OutcomeStatus = iota
	NotHandled
	Failed
)

func (s OutcomeStatus) String() string {
	switch s {
	case Dispatched:
		return "dispatched"
	case NotHandled:
		return "not-handled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(s))
	}
}

// Outcome is the result of a single dispatch. Cause is only set when Status is
// Failed.
type Outcome struct {
	Status  OutcomeStatus
	Command CommandName
	Cause   error
}

func (o Outcome) Handled() bool {
	return o.Status == Dispatched
}

func (o Outcome) Err() error {
	switch o.Status {
	case Failed:
		return o.Cause
	case NotHandled:
		return CommandNotHandled(o.Command)
	default:
		return nil
	}
}

type Dispatcher struct {
	Resolver HandlerResolver
}

func NewDispatcher(resolver HandlerResolver) *Dispatcher {
	return &Dispatcher{Resolver: resolver}
}

// Dispatch invokes the handler registered for the command's name. A missing
// handler is reported as NotHandled, never as a failure. Handler errors are
// returned unchanged in the Failed outcome. Every call invokes the handler
// again; commands are not deduplicated by id.
func (d *Dispatcher) Dispatch(cc CommandContext, command Command) Outcome {
	name := CommandNameOf(command)

	ctx, span := otel.Tracer(tracerName).Start(cc.Context(), fmt.Sprintf("dispatch %s", name))
	defer span.End()
	span.SetAttributes(
		attribute.String("command.id", cc.Id().String()),
		attribute.String("command.name", name.String()),
	)

	outcome := d.dispatch(CommandContext{id: cc.id, ctx: ctx, principal: cc.principal}, name, command)
	if outcome.Status == Failed {
		recordFailure(span, outcome.Cause)
	}
	span.SetAttributes(attribute.String("command.outcome", outcome.Status.String()))

	return outcome
}

func (d *Dispatcher) dispatch(cc CommandContext, name CommandName, command Command) Outcome {
	if d.Resolver == nil {
		return Outcome{Status: NotHandled, Command: name}
	}

	handler, ok, err := d.Resolver.Resolve(name)
	if err != nil {
		return Outcome{Status: Failed, Command: name, Cause: err}
	}
	if !ok || handler == nil {
		return Outcome{Status: NotHandled, Command: name}
	}

	if err := cc.Err(); err != nil {
		return Outcome{Status: Failed, Command: name, Cause: err}
	}

	if err := invoke(cc, name, handler, command); err != nil {
		return Outcome{Status: Failed, Command: name, Cause: err}
	}

	return Outcome{Status: Dispatched, Command: name}
}

func recordFailure(span trace.Span, err error) {
	message := Describe(err)
	defer func() {
		_ = recover()
	}()

	span.SetStatus(codes.Error, message)
	span.RecordError(err)
}

// Describe returns err's message, or a placeholder when err cannot describe
// itself.
func Describe(err error) (message string) {
	if err == nil {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			message = fmt.Sprintf("%T (error message unavailable)", err)
		}
	}()

	return err.Error()
}

func invoke(cc CommandContext, name CommandName, handler CommandHandler, command Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{Command: name, Value: r, Stack: string(debug.Stack())}
		}
	}()

	return handler.HandleCommand(cc, command)
}
