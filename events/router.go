package events

// Handler processes specific event types within a context T
// Presentation and audio collaborators implement this interface to receive routed events
type Handler[T any] interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase
	HandleEvent(ctx T, event GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// HandlerFunc adapts a function into a Handler for the listed types
type HandlerFunc[T any] struct {
	Types []EventType
	Fn    func(ctx T, event GameEvent)
}

func (h HandlerFunc[T]) HandleEvent(ctx T, event GameEvent) { h.Fn(ctx, event) }

func (h HandlerFunc[T]) EventTypes() []EventType { return h.Types }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Context T is passed to handlers (the frame's engine.Snapshot)
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
	queue    *Queue
	buf      []GameEvent
}

// NewRouter creates a router attached to the given queue
func NewRouter[T any](queue *Queue) *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
		queue:    queue,
		buf:      make([]GameEvent, 0, 32),
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll drains all pending events and routes them to handlers in FIFO order
// Returns the number of events drained
func (r *Router[T]) DispatchAll(ctx T) int {
	r.buf = r.queue.Drain(r.buf[:0])
	for _, ev := range r.buf {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ctx, ev)
		}
	}
	return len(r.buf)
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
