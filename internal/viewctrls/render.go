package viewctrls

import (
	"github.com/jask/viewctrls/internal/dom"
)

// render replaces any wrapper under container with a new one holding one
// bound node per descriptor. descs and bindings are parallel.
func (e *Engine) render(container *dom.Element, descs []Descriptor, bindings []binding, opts Options) *dom.Element {
	for _, old := range container.ChildrenByClass(ClassWrapper) {
		old.Remove()
	}

	wrapper := dom.New("div", dom.A("class", dom.JoinClasses(ClassWrapper, opts.WrapperClass)))
	for i, d := range descs {
		node := d.Element()
		e.bind(node, bindings[i])
		wrapper.Append(node)
	}
	container.Append(wrapper)
	return wrapper
}
