package viewctrls

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/viewctrls/internal/dom"
)

// Engine owns the control state of every container it initialized.
type Engine struct {
	mu        sync.Mutex
	instances map[*dom.Element]*Instance

	defaultContext any
	logger         *slog.Logger
	newID          func() uuid.UUID
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIDGenerator sets the instance id source.
func WithIDGenerator(fn func() uuid.UUID) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New creates an engine. defaultContext is passed to callbacks of controls
// without a ThisArg.
func New(defaultContext any, opts ...EngineOption) *Engine {
	e := &Engine{
		instances:      make(map[*dom.Element]*Instance),
		defaultContext: defaultContext,
		logger:         slog.Default(),
		newID:          uuid.New,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultContext returns the context used for controls without a ThisArg.
func (e *Engine) DefaultContext() any {
	return e.defaultContext
}

// Instance is the state kept for one initialized container.
type Instance struct {
	ID        uuid.UUID
	Container *dom.Element
	Wrapper   *dom.Element
	// Options is the snapshot of the last successful call. Its Controls
	// field is a copy of the accumulated set; changing it does not affect
	// the engine.
	Options Options

	controls *ControlSet
}

// Keys returns the accumulated control keys in render order.
func (i *Instance) Keys() []string {
	return i.controls.Keys()
}

// Control returns the rendered node for key.
func (i *Instance) Control(key string) *dom.Element {
	for _, el := range i.Wrapper.ChildrenByClass(ClassControl) {
		if v, _ := el.Attr(AttrKey); v == key {
			return el
		}
	}
	return nil
}

// Initialize validates opts, merges its controls into the container's
// accumulated set and rebuilds the wrapper. Nothing is modified when an
// error is returned.
func (e *Engine) Initialize(container *dom.Element, opts Options) (*Instance, error) {
	if container == nil {
		return nil, &Error{Op: "viewctrls.Initialize", Kind: KindType, Err: ErrNilContainer}
	}
	if err := Validate(opts.Controls); err != nil {
		return nil, err
	}

	prev, _ := e.Instance(container)
	working := opts.Controls.Clone()
	if prev != nil {
		working = prev.controls.Merge(opts.Controls)
	}

	descs := make([]Descriptor, 0, working.Len())
	bindings := make([]binding, 0, working.Len())
	var resolveErr error
	working.Each(func(key string, c Control) bool {
		d, err := Resolve(key, c, opts, e.logger)
		if err == nil {
			err = checkIconPlacement(key, d.Icon, container)
		}
		var b binding
		if err == nil {
			b, err = e.newBinding(key, c)
		}
		if err != nil {
			resolveErr = err
			return false
		}
		descs = append(descs, d)
		bindings = append(bindings, b)
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}

	// Everything below mutates the container.
	container.AddClass(ClassContainer)
	wrapper := e.render(container, descs, bindings, opts)

	inst := &Instance{
		Container: container,
		Wrapper:   wrapper,
		Options:   opts,
		controls:  working,
	}
	inst.Options.Controls = working.Clone()
	if prev != nil {
		inst.ID = prev.ID
	} else {
		inst.ID = e.newID()
	}

	e.mu.Lock()
	e.instances[container] = inst
	e.mu.Unlock()

	e.logger.Debug("viewctrls initialized", "instance", inst.ID, "controls", working.Len(), "reinit", prev != nil)
	return inst, nil
}

// checkIconPlacement rejects an icon node that contains container.
// Rendering it would put the container inside its own subtree.
func checkIconPlacement(key string, icon Icon, container *dom.Element) error {
	if icon.Node == nil || !icon.Node.Contains(container) {
		return nil
	}
	return &Error{Op: "viewctrls.Initialize", Kind: KindInvalidIcon, Key: key, Field: "icon", Err: ErrIconHierarchy}
}

// InitializeRaw decodes a loosely typed configuration object with Decode
// and initializes container with it.
func (e *Engine) InitializeRaw(container *dom.Element, raw any) (*Instance, error) {
	opts, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return e.Initialize(container, opts)
}

// Instance returns the state of an initialized container.
func (e *Engine) Instance(container *dom.Element) (*Instance, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inst, ok := e.instances[container]
	return inst, ok
}

// Controls returns the accumulated control keys of container, or nil.
func (e *Engine) Controls(container *dom.Element) []string {
	if inst, ok := e.Instance(container); ok {
		return inst.Keys()
	}
	return nil
}

// Destroy removes the marker class, clears the container and forgets its
// state. It reports false, and does nothing, for containers that are not
// initialized.
func (e *Engine) Destroy(container *dom.Element) bool {
	e.mu.Lock()
	inst, ok := e.instances[container]
	delete(e.instances, container)
	e.mu.Unlock()
	if !ok {
		return false
	}
	container.RemoveClass(ClassContainer)
	container.Empty()
	e.logger.Debug("viewctrls destroyed", "instance", inst.ID)
	return true
}
