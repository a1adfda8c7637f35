// Package progress tracks iteration completions across experiments without
// knowing anything about rendering. Runners advance named counters; whoever
// draws a bar subscribes as a listener.
package progress

import "sync"

// Counter is an advance-only tally. It is never reset or decremented.
type Counter struct {
	mu    sync.Mutex
	count int
	total int
}

// Advance records one completed step.
func (c *Counter) Advance() {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

// Count returns the number of steps completed so far.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Total returns the expected number of steps, 0 when unknown.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Board fans iteration-completed events out to per-task counters, one
// overall counter, and any subscribed listeners.
type Board struct {
	mu        sync.Mutex
	overall   Counter
	tasks     map[string]*Counter
	listeners []func(task string)
}

func NewBoard() *Board {
	return &Board{tasks: make(map[string]*Counter)}
}

// Task registers a named counter with an expected step total and returns
// it. Registering the same name again returns the existing counter.
func (b *Board) Task(name string, total int) *Counter {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.tasks[name]; ok {
		return c
	}
	c := &Counter{total: total}
	b.tasks[name] = c
	b.overall.mu.Lock()
	b.overall.total += total
	b.overall.mu.Unlock()
	return c
}

// Advance records one completed step for the named task and for the
// overall counter, then notifies listeners.
func (b *Board) Advance(task string) {
	b.mu.Lock()
	c, ok := b.tasks[task]
	listeners := b.listeners
	b.mu.Unlock()
	if ok {
		c.Advance()
	}
	b.overall.Advance()
	for _, fn := range listeners {
		fn(task)
	}
}

// AdvanceFunc returns a zero-argument callback bound to one task, the shape
// runners expect.
func (b *Board) AdvanceFunc(task string) func() {
	return func() { b.Advance(task) }
}

// Overall returns the shared counter spanning every task on the board.
func (b *Board) Overall() *Counter {
	return &b.overall
}

// OnAdvance subscribes a listener invoked after every advance. Listeners
// run on the advancing goroutine and must be fast.
func (b *Board) OnAdvance(fn func(task string)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}
