package outbound

// TaskDispatcher schedules background work onto the shared worker pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
