// Package history keeps undo and redo stacks of full-state snapshots.
package history

// Stack records snapshots of T. A snapshot is pushed before every change;
// Undo and Redo swap the current state with the top of the opposite stack.
type Stack[T any] struct {
	limit int
	undo  []T
	redo  []T
}

// New creates a stack holding at most limit undo snapshots. A limit of zero
// or less disables history.
func New[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: limit}
}

// Record pushes prev as the state to return to and clears the redo stack.
func (s *Stack[T]) Record(prev T) {
	if s.limit <= 0 {
		return
	}
	s.undo = append(s.undo, prev)
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
}

// CanUndo reports whether Undo has a snapshot to restore.
func (s *Stack[T]) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo has a snapshot to restore.
func (s *Stack[T]) CanRedo() bool { return len(s.redo) > 0 }

// Undo returns the snapshot to restore, pushing cur onto the redo stack.
func (s *Stack[T]) Undo(cur T) (T, bool) {
	var zero T
	if len(s.undo) == 0 {
		return zero, false
	}
	i := len(s.undo) - 1
	prev := s.undo[i]
	s.undo = s.undo[:i]
	s.redo = append(s.redo, cur)
	return prev, true
}

// Redo returns the snapshot to reapply, pushing cur back onto the undo stack.
func (s *Stack[T]) Redo(cur T) (T, bool) {
	var zero T
	if len(s.redo) == 0 {
		return zero, false
	}
	i := len(s.redo) - 1
	next := s.redo[i]
	s.redo = s.redo[:i]
	s.undo = append(s.undo, cur)
	return next, true
}

// Reset drops both stacks.
func (s *Stack[T]) Reset() {
	s.undo = nil
	s.redo = nil
}

// Len returns the number of undo and redo snapshots.
func (s *Stack[T]) Len() (undo, redo int) { return len(s.undo), len(s.redo) }

// Wrap decorates a mutation so that record runs before it, typically
// pushing a snapshot of the state the mutation is about to replace.
func Wrap[U any](record func(), mutate func(U)) func(U) {
	return func(u U) {
		record()
		mutate(u)
	}
}
