package tilequeue

// Validate exposes invariant checks to the external test package.
func (q *Queue[T]) Validate() error { return q.validate() }
