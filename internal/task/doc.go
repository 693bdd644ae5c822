// Package task provides the background processing infrastructure for
// notification dispatch: a buffered task queue, a worker pool that drains
// it, and the notification task plus event handler that connect the queue
// to the mentorship lifecycle events. Delivery is fire-and-forget;
// failures are logged and the notification is dropped.
package task
