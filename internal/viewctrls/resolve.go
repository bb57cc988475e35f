package viewctrls

import (
	"log/slog"
	"slices"

	"github.com/jask/viewctrls/internal/dom"
)

// Marker classes and attributes of the rendered tree.
const (
	ClassContainer  = "viewctrls"
	ClassWrapper    = "viewctrls-wrapper"
	ClassControl    = "viewctrl"
	ClassProperCase = "proper-case"
	ClassIcon       = "viewctrl-icon"

	AttrKey   = "data-key"
	AttrLabel = "data-label"
)

const defaultTag = "span"

var allowedTags = []string{"div", "span", "a", "b", "i", "strong", "em", "button"}

// Descriptor is a fully resolved control, ready to render.
type Descriptor struct {
	Key   string
	Label string
	Tag   string
	Attrs dom.Attrs
	Icon  Icon
}

// Resolve turns one control definition into a Descriptor. Label and tag
// problems are logged and fall back; an invalid icon is an error.
func Resolve(key string, c Control, opts Options, logger *slog.Logger) (Descriptor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := Descriptor{Key: key}

	label, ok := c.Label.(string)
	if !ok && c.Label != nil {
		logger.Warn("control label is not a string, using key", "key", key, "label", c.Label)
	}
	if label == "" {
		label = key
	}
	d.Label = label

	d.Tag = resolveTag(key, c.Tag, logger)

	classes := []string{ClassControl}
	if opts.CapitalizeLabels {
		classes = append(classes, ClassProperCase)
	}
	classes = append(classes, opts.ControlClass)
	defaults := dom.Attrs{
		dom.A("class", dom.JoinClasses(classes...)),
		dom.A(AttrLabel, label),
		dom.A(AttrKey, key),
	}
	d.Attrs = MergeAttrs(defaults, c.Attr)

	icon, err := ResolveIcon(c.Icon)
	if err != nil {
		if ve, ok := err.(*Error); ok {
			ve.Key = key
		}
		return Descriptor{}, err
	}
	d.Icon = icon
	return d, nil
}

func resolveTag(key, tag string, logger *slog.Logger) string {
	if tag == "" {
		return defaultTag
	}
	if !slices.Contains(allowedTags, tag) {
		logger.Warn("control tag is not allowed, using span", "key", key, "tag", tag, "allowed", allowedTags)
		return defaultTag
	}
	return tag
}

// Element builds the control node. The icon, if any, becomes its only
// child.
func (d Descriptor) Element() *dom.Element {
	el := dom.New(d.Tag)
	for _, attr := range d.Attrs {
		el.SetAttr(attr.Name, attr.Value)
	}
	if icon := d.Icon.element(); icon != nil {
		el.Prepend(icon)
	}
	return el
}
