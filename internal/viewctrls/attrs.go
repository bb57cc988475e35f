package viewctrls

import (
	"strings"

	"github.com/jask/viewctrls/internal/dom"
)

// MergeAttrs returns defaults overlaid with custom. class values are
// concatenated; any other custom attribute replaces the default, including
// data-key and data-label.
func MergeAttrs(defaults, custom dom.Attrs) dom.Attrs {
	out := defaults.Clone()
	for _, attr := range custom {
		if strings.EqualFold(attr.Name, "class") {
			base, _ := out.Get("class")
			out = out.Set("class", strings.TrimSpace(base+" "+attr.Value))
			continue
		}
		out = out.Set(attr.Name, attr.Value)
	}
	return out
}
