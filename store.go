package scopestack

import (
	"context"
	"iter"
	"slices"

	"github.com/goliatone/go-scopestack/pkg/activity"
)

// handle is the state shared by Element and Frame. The store keeps a pointer
// to the handle owning each slot, so len(items) always equals the number of
// live handles.
type handle[T any] struct {
	base  *base[T]
	depth int
	state State
}

type base[T any] struct {
	items   []T
	handles []*handle[T]

	id      string
	logger  FrameLogger
	emitter *activity.Emitter
}

func (b *base[T]) init(capacity int, opts []Option) {
	cfg := applyOptions(opts)
	b.id = cfg.id
	b.logger = cfg.frameLogger()
	b.emitter = cfg.emitter()
	if capacity > 0 {
		b.items = make([]T, 0, capacity)
		b.handles = make([]*handle[T], 0, capacity)
	}
}

func (b *base[T]) push(h *handle[T], item T) {
	h.base = b
	h.depth = len(b.items)
	h.state = StateLive
	b.items = append(b.items, item)
	b.handles = append(b.handles, h)
	b.record(OpPush, h, nil)
}

// truncate drops every slot at index n and above, zeroing them so the backing
// array does not retain popped values.
func (b *base[T]) truncate(n int) {
	clear(b.items[n:])
	clear(b.handles[n:])
	b.items = b.items[:n]
	b.handles = b.handles[:n]
}

// unwindTo marks every live handle at depth and above as released and shrinks
// the store to depth. Used by scope guards while a panic is in flight.
func (b *base[T]) unwindTo(depth int) {
	if depth < 0 || depth >= len(b.items) {
		return
	}
	for i := len(b.items) - 1; i >= depth; i-- {
		h := b.handles[i]
		h.state = StateReleased
		clear(b.items[i:])
		clear(b.handles[i:])
		b.items = b.items[:i]
		b.handles = b.handles[:i]
		b.record(OpUnwind, h, nil)
	}
}

func (b *base[T]) view(end int) []T {
	if end > len(b.items) {
		end = len(b.items)
	}
	if end <= 0 {
		return nil
	}
	return slices.Clone(b.items[:end])
}

func (b *base[T]) seq(end int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < end && i < len(b.items); i++ {
			if !yield(i, b.items[i]) {
				return
			}
		}
	}
}

func (b *base[T]) record(op Op, h *handle[T], err error) {
	if b.logger != nil {
		b.logger.LogFrame(FrameEvent{
			Stack: b.id,
			Op:    op,
			Depth: h.depth,
			Len:   len(b.items),
			State: h.state,
			Err:   err,
		})
	}
	if b.emitter == nil || err != nil {
		return
	}
	input := activity.FrameEventInput{
		StackID: b.id,
		Depth:   h.depth,
		Len:     len(b.items),
		State:   h.state.String(),
	}
	var event activity.Event
	switch op {
	case OpPush:
		event = activity.BuildFramePushedEvent(input)
	case OpTake:
		event = activity.BuildFrameTakenEvent(input)
	case OpRelease:
		event = activity.BuildFrameReleasedEvent(input)
	case OpUnwind:
		event = activity.BuildFrameUnwoundEvent(input)
	default:
		return
	}
	if notifyErr := b.emitter.Emit(context.Background(), event); notifyErr != nil && b.logger != nil {
		b.logger.LogFrame(FrameEvent{
			Stack: b.id,
			Op:    OpNotify,
			Depth: h.depth,
			Len:   len(b.items),
			State: h.state,
			Err:   notifyErr,
		})
	}
}

func (h *handle[T]) fail(op Op, err error) {
	orderErr := &OrderError{Op: op, Depth: h.depth, State: h.state, Err: err}
	if h.base != nil {
		orderErr.Stack = h.base.id
		orderErr.Len = len(h.base.items)
		h.base.record(op, h, orderErr)
	}
	panic(orderErr)
}

// ensureInnermost panics unless h is live and owns the top slot. notTop is the
// sentinel reported when a later handle is still live.
func (h *handle[T]) ensureInnermost(op Op, notTop error) {
	if h.base == nil || h.state != StateLive {
		h.fail(op, ErrHandleFinished)
	}
	b := h.base
	if h.depth != len(b.items)-1 || b.handles[h.depth] != h {
		h.fail(op, notTop)
	}
}

func (h *handle[T]) top() T {
	h.ensureInnermost(OpRead, ErrNotInnermost)
	return h.base.items[h.depth]
}

func (h *handle[T]) topPtr() *T {
	h.ensureInnermost(OpRead, ErrNotInnermost)
	return &h.base.items[h.depth]
}

func (h *handle[T]) set(value T) {
	h.ensureInnermost(OpRead, ErrNotInnermost)
	h.base.items[h.depth] = value
}

func (h *handle[T]) take() T {
	h.ensureInnermost(OpTake, ErrOrderViolation)
	b := h.base
	value := b.items[h.depth]
	b.truncate(h.depth)
	h.state = StateTaken
	b.record(OpTake, h, nil)
	return value
}

func (h *handle[T]) release() {
	if h.base == nil || h.state.Terminal() {
		return
	}
	h.ensureInnermost(OpRelease, ErrOrderViolation)
	b := h.base
	b.truncate(h.depth)
	h.state = StateReleased
	b.record(OpRelease, h, nil)
}

// guard is deferred by the With helpers. It must call recover itself, so it
// receives the recovered value from the deferred closure.
func (h *handle[T]) guard(recovered any) {
	if recovered != nil {
		if h.base != nil {
			h.base.unwindTo(h.depth)
		}
		if h.state == StateLive {
			h.state = StateReleased
		}
		panic(recovered)
	}
	h.release()
	// fn may finish the handle itself and then push again.
	if h.base != nil && len(h.base.items) > h.depth {
		h.fail(OpRelease, ErrOrderViolation)
	}
}
