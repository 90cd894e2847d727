package counter

import (
	"github.com/weegigs/wee-commands-go/we"
)

// ContentTypes registers every counter command under its vendor media type,
// e.g. application/vnd.counter.increment+json.
func ContentTypes() (*we.ContentTypes, error) {
	types := we.NewContentTypes()

	if _, err := we.RegisterDefault[Increment](types); err != nil {
		return nil, err
	}
	if _, err := we.RegisterDefault[Decrement](types); err != nil {
		return nil, err
	}
	if _, err := we.RegisterDefault[Randomize](types); err != nil {
		return nil, err
	}
	if _, err := we.RegisterDefault[Reset](types); err != nil {
		return nil, err
	}

	return types, nil
}

func Handlers(store *Counters, randomizer Randomizer) (*we.Registry, error) {
	builder := we.NewRegistry()
	we.HandleFunc(builder, increment(store))
	we.HandleFunc(builder, decrement(store))
	we.HandleFunc(builder, randomize(store, randomizer))

	return builder.Build()
}
