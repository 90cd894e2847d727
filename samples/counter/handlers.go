package counter

import (
	"github.com/pkg/errors"

	"github.com/weegigs/wee-commands-go/we"
)

var ErrMissingCounter = errors.New("counter key is required")

func increment(store *Counters) func(cc we.CommandContext, cmd Increment) error {
	return func(cc we.CommandContext, cmd Increment) error {
		if cmd.Counter == "" {
			return ErrMissingCounter
		}
		if cmd.Amount < 0 {
			return errors.Errorf("cannot increment %s by a negative amount", cmd.Counter)
		}

		store.Apply(cc, cmd.Counter, func(current int) int { return current + cmd.Amount })
		return nil
	}
}

func decrement(store *Counters) func(cc we.CommandContext, cmd Decrement) error {
	return func(cc we.CommandContext, cmd Decrement) error {
		if cmd.Counter == "" {
			return ErrMissingCounter
		}
		if cmd.Amount < 0 {
			return errors.Errorf("cannot decrement %s by a negative amount", cmd.Counter)
		}

		store.Apply(cc, cmd.Counter, func(current int) int { return current - cmd.Amount })
		return nil
	}
}

func randomize(store *Counters, randomizer Randomizer) func(cc we.CommandContext, cmd Randomize) error {
	return func(cc we.CommandContext, cmd Randomize) error {
		if cmd.Counter == "" {
			return ErrMissingCounter
		}

		value := randomizer()
		store.Apply(cc, cmd.Counter, func(int) int { return value })
		return nil
	}
}
