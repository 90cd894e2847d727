package we

// HandlerResolver finds the handler for a command name. Implementations are
// read concurrently by every in-flight request and must not change after
// startup.
type HandlerResolver interface {
	Resolve(name CommandName) (CommandHandler, bool, error)
}

type CommandHandlers map[CommandName]CommandHandler

// Registry is an immutable HandlerResolver built by a RegistryBuilder.
type Registry struct {
	handlers CommandHandlers
}

func (r *Registry) Resolve(name CommandName) (CommandHandler, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	h, ok := r.handlers[name]
	return h, ok, nil
}

func (r *Registry) Names() []CommandName {
	names := make([]CommandName, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

type RegistryBuilder struct {
	handlers CommandHandlers
	err      error
}

func NewRegistry() *RegistryBuilder {
	return &RegistryBuilder{handlers: make(CommandHandlers)}
}

// Handle registers handler for the named command. At most one handler may be
// registered per name; a second registration fails the build.
func (b *RegistryBuilder) Handle(name CommandName, handler CommandHandler) *RegistryBuilder {
	if b.err != nil {
		return b
	}

	if _, exists := b.handlers[name]; exists {
		b.err = &DuplicateHandlerError{Command: name}
		return b
	}

	b.handlers[name] = handler
	return b
}

// HandleFunc registers a typed handler function under the name of C.
func HandleFunc[C any](b *RegistryBuilder, fn func(cc CommandContext, cmd C) error) *RegistryBuilder {
	var zero C
	return b.Handle(CommandNameOf(zero), CommandHandlerFunction[C](fn))
}

func (b *RegistryBuilder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	handlers := make(CommandHandlers, len(b.handlers))
	for name, handler := range b.handlers {
		handlers[name] = handler
	}

	return &Registry{handlers: handlers}, nil
}

func (b *RegistryBuilder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

type compositeResolver []HandlerResolver

// CompositeResolver resolves against every member. A name that more than one
// member can handle is reported as an AmbiguousHandlerError.
func CompositeResolver(resolvers ...HandlerResolver) HandlerResolver {
	return compositeResolver(resolvers)
}

func (c compositeResolver) Resolve(name CommandName) (CommandHandler, bool, error) {
	var found CommandHandler
	matches := 0

	for _, resolver := range c {
		h, ok, err := resolver.Resolve(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			found = h
			matches++
		}
	}

	if matches > 1 {
		return nil, false, &AmbiguousHandlerError{Command: name, Matches: matches}
	}

	return found, matches == 1, nil
}
