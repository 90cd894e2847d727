package counter

import (
	"sync"

	"github.com/weegigs/wee-commands-go/we"
)

type Counter struct {
	Key         string       `json:"key"`
	Current     int          `json:"current"`
	Applied     int          `json:"applied"`
	LastCommand we.CommandId `json:"lastCommand"`
	UpdatedBy   string       `json:"updatedBy,omitempty"`
}

func (state *Counter) Value() int {
	return state.Current
}

// Counters is an in-memory counter store shared by the command handlers.
type Counters struct {
	mu       sync.RWMutex
	counters map[string]*Counter
}

func NewCounters() *Counters {
	return &Counters{counters: make(map[string]*Counter)}
}

func (c *Counters) Apply(cc we.CommandContext, key string, update func(current int) int) Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	counter, ok := c.counters[key]
	if !ok {
		counter = &Counter{Key: key}
		c.counters[key] = counter
	}

	counter.Current = update(counter.Current)
	counter.Applied++
	counter.LastCommand = cc.Id()
	counter.UpdatedBy = ""
	if p, ok := cc.Principal(); ok {
		counter.UpdatedBy = p.Subject
	}

	return *counter
}

func (c *Counters) Get(key string) (Counter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counter, ok := c.counters[key]
	if !ok {
		return Counter{}, false
	}
	return *counter, true
}
