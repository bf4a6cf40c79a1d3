// Package pool implements per-type free lists of reusable instances.
//
// A Pool owns every instance it ever created. Instances move between two
// states, Pooled and Active, and only through Acquire and Release, so the
// free list never holds a duplicate and never holds an Active instance.
// Pools are not safe for concurrent use; they are driven from a single frame
// loop.
package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrDoubleRelease is returned when releasing an instance that is already
	// pooled. The call has no effect.
	ErrDoubleRelease = errors.New("pool: instance already released")

	// ErrForeign is returned when releasing an instance this pool never
	// created.
	ErrForeign = errors.New("pool: instance does not belong to this pool")

	// ErrUnderrun is returned by Acquire when a capped pool with the refuse
	// policy has no free instance left.
	ErrUnderrun = errors.New("pool: no free instance")
)

// State is the lifecycle state of a pooled instance.
type State uint8

const (
	Pooled State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Pooled:
		return "pooled"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Policy decides what Acquire does when the free list is empty.
type Policy uint8

const (
	// PolicyGrow constructs a new instance whenever the free list is empty.
	// Max is ignored.
	PolicyGrow Policy = iota
	// PolicyRefuse constructs new instances up to Max and then fails with
	// ErrUnderrun.
	PolicyRefuse
)

// Options configures a Pool.
type Options struct {
	Policy Policy
	Max    int // only used by PolicyRefuse; <= 0 means no instance may be created on demand
}

// Stats is a snapshot of pool occupancy. Created == Active + Pooled.
type Stats struct {
	Created int
	Active  int
	Pooled  int
}

// Pool is a free list of reusable instances of one type.
type Pool[T comparable] struct {
	newFn  func() T
	opts   Options
	items  []T
	states []State
	index  map[T]int
	free   []int // stack of indices into items
}

// New creates an empty pool. newFn constructs an instance on demand and must
// return a distinct value each call.
func New[T comparable](newFn func() T, opts Options) *Pool[T] {
	return &Pool[T]{
		newFn: newFn,
		opts:  opts,
		index: make(map[T]int),
	}
}

// Prewarm creates instances until the pool holds at least n, all pooled.
// Under PolicyRefuse creation stops at Max.
func (p *Pool[T]) Prewarm(n int) error {
	if p.opts.Policy == PolicyRefuse && n > p.opts.Max {
		n = p.opts.Max
	}
	if n > cap(p.items) {
		p.reserve(n)
	}
	for len(p.items) < n {
		if _, err := p.create(); err != nil {
			return err
		}
		p.free = append(p.free, len(p.items)-1)
	}
	return nil
}

// Acquire returns a pooled instance, marking it active. When none is free the
// pool grows or refuses according to its policy.
func (p *Pool[T]) Acquire() (T, error) {
	if n := len(p.free); n > 0 {
		i := p.free[n-1]
		p.free = p.free[:n-1]
		p.states[i] = Active
		return p.items[i], nil
	}

	if p.opts.Policy == PolicyRefuse && len(p.items) >= p.opts.Max {
		var zero T
		return zero, ErrUnderrun
	}

	i, err := p.create()
	if err != nil {
		var zero T
		return zero, err
	}
	p.states[i] = Active
	return p.items[i], nil
}

// Release returns an active instance to the free list.
func (p *Pool[T]) Release(item T) error {
	i, ok := p.index[item]
	if !ok {
		return ErrForeign
	}
	if p.states[i] != Active {
		return ErrDoubleRelease
	}
	p.states[i] = Pooled
	p.free = append(p.free, i)
	return nil
}

// ReleaseAll returns every active instance to the free list.
func (p *Pool[T]) ReleaseAll() {
	for i, s := range p.states {
		if s == Active {
			p.states[i] = Pooled
			p.free = append(p.free, i)
		}
	}
}

// State reports the state of an instance and whether the pool owns it.
func (p *Pool[T]) State(item T) (State, bool) {
	i, ok := p.index[item]
	if !ok {
		return Pooled, false
	}
	return p.states[i], true
}

// Len returns the number of instances ever created.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// At returns the i-th created instance and its state. Indices are stable for
// the lifetime of the pool, which makes At usable for allocation-free
// iteration.
func (p *Pool[T]) At(i int) (T, State) {
	return p.items[i], p.states[i]
}

// Stats returns the current occupancy.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Created: len(p.items),
		Active:  len(p.items) - len(p.free),
		Pooled:  len(p.free),
	}
}

// Teardown destroys every instance, active or not, and empties the pool.
// destroy may be nil.
func (p *Pool[T]) Teardown(destroy func(T)) {
	if destroy != nil {
		for _, it := range p.items {
			destroy(it)
		}
	}
	p.items = nil
	p.states = nil
	p.free = nil
	p.index = make(map[T]int)
}

func (p *Pool[T]) create() (int, error) {
	item := p.newFn()
	if _, dup := p.index[item]; dup {
		return 0, fmt.Errorf("pool: constructor returned an instance already tracked: %v", item)
	}
	if len(p.items) == cap(p.items) {
		p.reserve(2*len(p.items) + 4)
	}
	i := len(p.items)
	p.items = append(p.items, item)
	p.states = append(p.states, Pooled)
	p.index[item] = i
	return i, nil
}

// reserve grows backing storage so that the free stack can always hold every
// instance without reallocating on Release.
func (p *Pool[T]) reserve(n int) {
	if cap(p.items) < n {
		items := make([]T, len(p.items), n)
		copy(items, p.items)
		p.items = items

		states := make([]State, len(p.states), n)
		copy(states, p.states)
		p.states = states
	}
	if cap(p.free) < n {
		free := make([]int, len(p.free), n)
		copy(free, p.free)
		p.free = free
	}
}
