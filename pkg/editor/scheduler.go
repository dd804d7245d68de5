package editor

// Scheduler runs a task on a later turn of the host's event loop. Tasks are
// never run inline from Schedule.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(task func())

// Schedule calls f.
func (f SchedulerFunc) Schedule(task func()) { f(task) }

// QueueScheduler collects tasks until the host drains them. It suits hosts
// whose loop has an explicit "next turn", and tests.
type QueueScheduler struct {
	pending []func()
}

// Schedule queues task.
func (q *QueueScheduler) Schedule(task func()) {
	q.pending = append(q.pending, task)
}

// Pending reports how many tasks are waiting.
func (q *QueueScheduler) Pending() int {
	return len(q.pending)
}

// RunPending runs the tasks queued before the call, in order, and returns
// how many ran. Tasks scheduled while running wait for the next call.
func (q *QueueScheduler) RunPending() int {
	tasks := q.pending
	q.pending = nil
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
