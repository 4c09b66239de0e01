package pool

type JobQueue chan Job

// Full reports whether the next send would block.
func (q JobQueue) Full() bool {
	return len(q) == cap(q)
}
