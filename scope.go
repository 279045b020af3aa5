package scopestack

// With pushes item, runs fn with the new element and releases the element
// when fn returns. If fn panics the stack is shrunk back to the length it had
// before the push, releasing any element fn leaked, and the panic continues.
func (s *Stack[T]) With(item T, fn func(*Element[T]) error) error {
	e := s.Push(item)
	defer func() {
		e.h.guard(recover())
	}()
	return fn(e)
}

// With opens a root frame for the duration of fn. See Stack.With.
func (s *Bottomless[T]) With(item T, fn func(*Frame[T]) error) error {
	f := s.Push(item)
	defer func() {
		f.h.guard(recover())
	}()
	return fn(f)
}

// With pushes a child frame for the duration of fn. See Stack.With.
func (f *Frame[T]) With(item T, fn func(*Frame[T]) error) error {
	child := f.Push(item)
	defer func() {
		child.h.guard(recover())
	}()
	return fn(child)
}
