package we

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type CommandName string

func (n CommandName) String() string {
	return string(n)
}

type Command any

func CommandNameOf(command Command) CommandName {
	return CommandName(NameOf(command))
}

// CommandId identifies a single command request. Callers choose it, typically
// as the final path segment of the request.
type CommandId = uuid.UUID

func ParseCommandId(value string) (CommandId, error) {
	return uuid.Parse(value)
}

type CommandHandler interface {
	HandleCommand(cc CommandContext, cmd Command) error
}

type CommandHandlerFunction[C any] func(cc CommandContext, cmd C) error

func (f CommandHandlerFunction[C]) HandleCommand(cc CommandContext, cmd Command) error {
	command, ok := cmd.(C)
	if !ok {
		return UnexpectedCommand(cmd)
	}

	return f(cc, command)
}

// CommandContext groups everything a handler learns about the request that
// carried its command. It is created once per dispatch and never modified.
type CommandContext struct {
	id        CommandId
	ctx       context.Context
	principal *Principal
}

func NewCommandContext(ctx context.Context, id CommandId, principal *Principal) CommandContext {
	if ctx == nil {
		ctx = context.Background()
	}

	var p *Principal
	if principal != nil {
		copied := principal.clone()
		p = &copied
	}

	return CommandContext{id: id, ctx: ctx, principal: p}
}

func (cc CommandContext) Id() CommandId {
	return cc.id
}

func (cc CommandContext) Context() context.Context {
	if cc.ctx == nil {
		return context.Background()
	}
	return cc.ctx
}

// Principal returns the authenticated identity of the caller, if there was one.
func (cc CommandContext) Principal() (Principal, bool) {
	if cc.principal == nil {
		return Principal{}, false
	}
	return cc.principal.clone(), true
}

// Err reports whether the request behind the command has been cancelled.
func (cc CommandContext) Err() error {
	return cc.Context().Err()
}

func (cc CommandContext) String() string {
	return fmt.Sprintf("command %s", cc.id)
}
