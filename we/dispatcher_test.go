package we

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Ping struct {
	Message string `json:"message"`
}

type Unregistered struct{}

func newContext() CommandContext {
	return NewCommandContext(context.Background(), uuid.New(), nil)
}

func dispatchesToHandler(t *testing.T) {
	var received []Ping
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		received = append(received, cmd)
		return nil
	}).MustBuild()

	outcome := NewDispatcher(registry).Dispatch(newContext(), Ping{Message: "hello"})

	assert.Equal(t, Dispatched, outcome.Status)
	assert.True(t, outcome.Handled())
	assert.NoError(t, outcome.Err())
	assert.Equal(t, []Ping{{Message: "hello"}}, received)
}

func reportsMissingHandler(t *testing.T) {
	registry := NewRegistry().MustBuild()

	outcome := NewDispatcher(registry).Dispatch(newContext(), Unregistered{})

	assert.Equal(t, NotHandled, outcome.Status)
	assert.False(t, outcome.Handled())
	assert.Nil(t, outcome.Cause)
	assert.Equal(t, CommandName("we:unregistered"), outcome.Command)

	var notHandled *CommandNotHandledError
	assert.ErrorAs(t, outcome.Err(), &notHandled)
}

func propagatesHandlerErrors(t *testing.T) {
	failure := errors.New("handler failed")
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		return failure
	}).MustBuild()

	outcome := NewDispatcher(registry).Dispatch(newContext(), Ping{})

	assert.Equal(t, Failed, outcome.Status)
	assert.Same(t, failure, outcome.Cause)
}

func recoversHandlerPanics(t *testing.T) {
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		panic("boom")
	}).MustBuild()

	outcome := NewDispatcher(registry).Dispatch(newContext(), Ping{})

	assert.Equal(t, Failed, outcome.Status)
	var panicked *HandlerPanicError
	require.ErrorAs(t, outcome.Cause, &panicked)
	assert.Equal(t, "boom", panicked.Value)
	assert.NotEmpty(t, panicked.StackTrace())
}

func propagatesAmbiguity(t *testing.T) {
	handler := CommandHandlerFunction[Ping](func(cc CommandContext, cmd Ping) error { return nil })
	first := NewRegistry().Handle(CommandNameOf(Ping{}), handler).MustBuild()
	second := NewRegistry().Handle(CommandNameOf(Ping{}), handler).MustBuild()

	outcome := NewDispatcher(CompositeResolver(first, second)).Dispatch(newContext(), Ping{})

	assert.Equal(t, Failed, outcome.Status)
	var ambiguous *AmbiguousHandlerError
	require.ErrorAs(t, outcome.Cause, &ambiguous)
	assert.Equal(t, 2, ambiguous.Matches)
}

func skipsCancelledRequests(t *testing.T) {
	invoked := false
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		invoked = true
		return nil
	}).MustBuild()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := NewDispatcher(registry).Dispatch(NewCommandContext(ctx, uuid.New(), nil), Ping{})

	assert.Equal(t, Failed, outcome.Status)
	assert.ErrorIs(t, outcome.Cause, context.Canceled)
	assert.False(t, invoked)
}

func dispatchesDuplicatesAgain(t *testing.T) {
	count := 0
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		count++
		return nil
	}).MustBuild()

	dispatcher := NewDispatcher(registry)
	cc := newContext()

	assert.True(t, dispatcher.Dispatch(cc, Ping{}).Handled())
	assert.True(t, dispatcher.Dispatch(cc, Ping{}).Handled())
	assert.Equal(t, 2, count)
}

func passesContextToHandler(t *testing.T) {
	id := uuid.New()
	var seen CommandContext
	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		seen = cc
		return nil
	}).MustBuild()

	NewDispatcher(registry).Dispatch(NewCommandContext(context.Background(), id, &Principal{Subject: "someone"}), Ping{})

	assert.Equal(t, id, seen.Id())
	p, ok := seen.Principal()
	assert.True(t, ok)
	assert.Equal(t, "someone", p.Subject)
}

type silentError struct{}

func (silentError) Error() string {
	panic("no message")
}

func reportsIndescribableErrors(t *testing.T) {
	previous := otel.GetTracerProvider()
	provider := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error {
		return silentError{}
	}).MustBuild()

	outcome := NewDispatcher(registry).Dispatch(newContext(), Ping{})

	assert.Equal(t, Failed, outcome.Status)
	assert.Equal(t, silentError{}, outcome.Cause)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "handler failed", Describe(errors.New("handler failed")))
	assert.Equal(t, "we.silentError (error message unavailable)", Describe(silentError{}))
}

func TestDispatcher(t *testing.T) {
	t.Run("dispatches to the registered handler", dispatchesToHandler)
	t.Run("reports a missing handler", reportsMissingHandler)
	t.Run("propagates handler errors", propagatesHandlerErrors)
	t.Run("recovers handler panics", recoversHandlerPanics)
	t.Run("reports errors that cannot describe themselves", reportsIndescribableErrors)
	t.Run("propagates resolver ambiguity", propagatesAmbiguity)
	t.Run("skips cancelled requests", skipsCancelledRequests)
	t.Run("dispatches the same command twice", dispatchesDuplicatesAgain)
	t.Run("passes the command context to the handler", passesContextToHandler)
}

func TestRegistry(t *testing.T) {
	t.Run("rejects duplicate handlers", func(t *testing.T) {
		handler := CommandHandlerFunction[Ping](func(cc CommandContext, cmd Ping) error { return nil })

		_, err := NewRegistry().
			Handle(CommandNameOf(Ping{}), handler).
			Handle(CommandNameOf(Ping{}), handler).
			Build()

		var duplicate *DuplicateHandlerError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("is not changed by later registrations", func(t *testing.T) {
		builder := NewRegistry()
		registry := builder.MustBuild()

		HandleFunc(builder, func(cc CommandContext, cmd Ping) error { return nil })

		_, ok, err := registry.Resolve(CommandNameOf(Ping{}))
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("composite resolves a single match", func(t *testing.T) {
		registry := HandleFunc(NewRegistry(), func(cc CommandContext, cmd Ping) error { return nil }).MustBuild()

		handler, ok, err := CompositeResolver(NewRegistry().MustBuild(), registry).Resolve(CommandNameOf(Ping{}))
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NotNil(t, handler)
	})
}
