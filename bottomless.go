package scopestack

import "iter"

// Bottomless is the backing store whose handles see the whole stack below
// them. The store only opens root frames; nesting grows through Frame.Push.
//
// The zero value is an empty store ready to use. A Bottomless must not be
// copied after the first Push.
type Bottomless[T any] struct {
	b base[T]
}

// NewBottomless returns an empty bottomless store.
func NewBottomless[T any](opts ...Option) *Bottomless[T] {
	s := &Bottomless[T]{}
	s.b.init(0, opts)
	return s
}

// NewBottomlessWithCapacity returns an empty bottomless store with room for n
// elements. Negative n is treated as zero.
func NewBottomlessWithCapacity[T any](n int, opts ...Option) *Bottomless[T] {
	s := &Bottomless[T]{}
	s.b.init(n, opts)
	return s
}

// Push opens the root frame. It panics with ErrStoreBorrowed while another
// frame of this store is live.
func (s *Bottomless[T]) Push(item T) *Frame[T] {
	if len(s.b.items) > 0 {
		rejected := &handle[T]{base: &s.b, depth: len(s.b.items)}
		rejected.fail(OpPush, ErrStoreBorrowed)
	}
	f := &Frame[T]{}
	s.b.push(&f.h, item)
	return f
}

// Len returns the number of slots currently on the stack.
func (s *Bottomless[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b.items)
}

// Cap returns the capacity of the backing slice.
func (s *Bottomless[T]) Cap() int {
	if s == nil {
		return 0
	}
	return cap(s.b.items)
}

// ID returns the store identifier used in logs and events.
func (s *Bottomless[T]) ID() string {
	if s == nil {
		return ""
	}
	return s.b.id
}

// Slice returns a copy of every element on the stack, bottom first.
func (s *Bottomless[T]) Slice() []T {
	if s == nil {
		return nil
	}
	return s.b.view(len(s.b.items))
}

// All iterates the stack bottom first without copying.
func (s *Bottomless[T]) All() iter.Seq2[int, T] {
	if s == nil {
		return func(func(int, T) bool) {}
	}
	return s.b.seq(len(s.b.items))
}

// Frame is a scoped handle onto one slot of a Bottomless store. Besides the
// Element operations it can push the next frame and read every slot from the
// root up to its own.
type Frame[T any] struct {
	h handle[T]
}

// Push appends item and returns the child frame at Depth()+1.
func (f *Frame[T]) Push(item T) *Frame[T] {
	f.h.ensureInnermost(OpPush, ErrNotInnermost)
	child := &Frame[T]{}
	f.h.base.push(&child.h, item)
	return child
}

// Depth returns the slot index this frame owns.
func (f *Frame[T]) Depth() int {
	return f.h.depth
}

// State returns the lifecycle state of the frame.
func (f *Frame[T]) State() State {
	return f.h.state
}

// Live reports whether the frame still owns its slot.
func (f *Frame[T]) Live() bool {
	return f.h.base != nil && f.h.state == StateLive
}

// Top returns the value in the frame's slot.
func (f *Frame[T]) Top() T {
	return f.h.top()
}

// TopPtr returns a pointer to the frame's slot. The pointer is valid until
// the next push on the same store.
func (f *Frame[T]) TopPtr() *T {
	return f.h.topPtr()
}

// Set replaces the value in the frame's slot.
func (f *Frame[T]) Set(value T) {
	f.h.set(value)
}

// Parent returns the value one slot below this frame, if any.
func (f *Frame[T]) Parent() (T, bool) {
	f.h.ensureInnermost(OpRead, ErrNotInnermost)
	if f.h.depth == 0 {
		var zero T
		return zero, false
	}
	return f.h.base.items[f.h.depth-1], true
}

// Slice returns a copy of the slots from the root up to and including this
// frame.
func (f *Frame[T]) Slice() []T {
	f.h.ensureInnermost(OpRead, ErrNotInnermost)
	return f.h.base.view(f.h.depth + 1)
}

// All iterates the slots from the root up to and including this frame
// without copying. The frame must stay innermost while the loop runs.
func (f *Frame[T]) All() iter.Seq2[int, T] {
	f.h.ensureInnermost(OpRead, ErrNotInnermost)
	return f.h.base.seq(f.h.depth + 1)
}

// Pop removes the slot and returns its current value.
func (f *Frame[T]) Pop() T {
	return f.h.take()
}

// Release discards the slot. It is a no-op once the frame is finished.
func (f *Frame[T]) Release() {
	f.h.release()
}
