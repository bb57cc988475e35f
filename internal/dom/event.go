package dom

// Event types dispatched by hosts.
const (
	EventClick = "click"
)

// Event is passed to listeners. Target is the element the event was
// dispatched on; CurrentTarget is the element whose listener is running.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element
	// Detail carries host-specific data, for example mouse coordinates.
	Detail any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Stopped reports whether StopPropagation was called.
func (ev *Event) Stopped() bool { return ev.stopped }

// Listener handles an event. A non-nil error stops dispatch and is
// returned to whoever dispatched the event.
type Listener func(ev *Event) error

type listenerEntry struct {
	fn Listener
}

// On registers a listener for typ and returns a function that removes it.
func (e *Element) On(typ string, fn Listener) (off func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]*listenerEntry)
	}
	entry := &listenerEntry{fn: fn}
	e.listeners[typ] = append(e.listeners[typ], entry)
	return func() {
		list := e.listeners[typ]
		for i, l := range list {
			if l == entry {
				e.listeners[typ] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns how many listeners are registered for typ.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// Dispatch delivers ev to e and then to each ancestor until a listener
// stops propagation or returns an error.
func (e *Element) Dispatch(ev *Event) error {
	if ev.Target == nil {
		ev.Target = e
	}
	for cur := e; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		// snapshot: listeners may re-render and detach nodes
		list := append([]*listenerEntry(nil), cur.listeners[ev.Type]...)
		for _, l := range list {
			if err := l.fn(ev); err != nil {
				return err
			}
		}
		if ev.stopped {
			break
		}
	}
	return nil
}

// Click dispatches a click event with e as target.
func (e *Element) Click() error {
	return e.Dispatch(&Event{Type: EventClick, Target: e})
}
