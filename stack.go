package scopestack

// Stack is the single-slot backing store. Each Push returns an Element that
// owns exactly the slot it created. Elements may be nested by pushing on the
// store again; an outer element is unusable until every element pushed after
// it has finished.
//
// The zero value is an empty stack ready to use. A Stack must not be copied
// after the first Push.
type Stack[T any] struct {
	b base[T]
}

// NewStack returns an empty stack. Nothing is allocated until the first push.
func NewStack[T any](opts ...Option) *Stack[T] {
	s := &Stack[T]{}
	s.b.init(0, opts)
	return s
}

// NewStackWithCapacity returns an empty stack with room for n elements before
// the backing slice grows. Negative n is treated as zero.
func NewStackWithCapacity[T any](n int, opts ...Option) *Stack[T] {
	s := &Stack[T]{}
	s.b.init(n, opts)
	return s
}

// Push appends item and returns the element owning its slot, at depth equal
// to the previous length.
func (s *Stack[T]) Push(item T) *Element[T] {
	e := &Element[T]{}
	s.b.push(&e.h, item)
	return e
}

// Len returns the number of slots currently on the stack.
func (s *Stack[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b.items)
}

// Cap returns the capacity of the backing slice.
func (s *Stack[T]) Cap() int {
	if s == nil {
		return 0
	}
	return cap(s.b.items)
}

// ID returns the store identifier used in logs and events.
func (s *Stack[T]) ID() string {
	if s == nil {
		return ""
	}
	return s.b.id
}

// Element is a scoped handle onto one slot of a Stack. Every method except
// Depth, State, Live and Release panics with an *OrderError unless the
// element is the innermost live handle of its stack.
type Element[T any] struct {
	h handle[T]
}

// Depth returns the slot index this element owns.
func (e *Element[T]) Depth() int {
	return e.h.depth
}

// State returns the lifecycle state of the element.
func (e *Element[T]) State() State {
	return e.h.state
}

// Live reports whether the element still owns its slot.
func (e *Element[T]) Live() bool {
	return e.h.base != nil && e.h.state == StateLive
}

// Top returns the value in the element's slot.
func (e *Element[T]) Top() T {
	return e.h.top()
}

// TopPtr returns a pointer to the element's slot for in-place mutation. The
// pointer is valid until the next push on the same stack.
func (e *Element[T]) TopPtr() *T {
	return e.h.topPtr()
}

// Set replaces the value in the element's slot.
func (e *Element[T]) Set(value T) {
	e.h.set(value)
}

// Pop removes the slot and returns its current value. The element becomes
// Taken and a later Release does nothing.
func (e *Element[T]) Pop() T {
	return e.h.take()
}

// Release discards the slot. It is a no-op when the element was already
// taken or released, so it is safe to defer right after Push.
func (e *Element[T]) Release() {
	e.h.release()
}
