package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/jask/viewctrls/internal/viewctrls"
)

type hclFile struct {
	CapitalizeLabels *bool         `hcl:"capitalize_labels,optional"`
	ControlClass     *string       `hcl:"control_class,optional"`
	WrapperClass     *string       `hcl:"wrapper_class,optional"`
	Controls         []*hclControl `hcl:"control,block"`
}

type hclControl struct {
	Key      string         `hcl:"key,label"`
	Label    cty.Value      `hcl:"label,optional"`
	Icon     cty.Value      `hcl:"icon,optional"`
	Tag      *string        `hcl:"tag,optional"`
	Attr     hcl.Expression `hcl:"attr,optional"`
	Func     *string        `hcl:"func,optional"`
	Callback *string        `hcl:"callback,optional"`
	Fn       *string        `hcl:"fn,optional"`
	ThisArg  cty.Value      `hcl:"this_arg,optional"`
	Args     cty.Value      `hcl:"args,optional"`
}

// parseHCL decodes control blocks in source order. attr is read as an
// expression so its keys keep their order too.
func parseHCL(data []byte, filename string) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse hcl: %w", diags)
	}
	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("decode hcl: %w", diags)
	}

	var out viewctrls.MapSlice
	if f.CapitalizeLabels != nil {
		out = append(out, viewctrls.MapItem{Key: "capitalize_labels", Value: *f.CapitalizeLabels})
	}
	if f.ControlClass != nil {
		out = append(out, viewctrls.MapItem{Key: "control_class", Value: *f.ControlClass})
	}
	if f.WrapperClass != nil {
		out = append(out, viewctrls.MapItem{Key: "wrapper_class", Value: *f.WrapperClass})
	}

	controls := make(viewctrls.MapSlice, 0, len(f.Controls))
	for _, c := range f.Controls {
		def, err := c.raw()
		if err != nil {
			return nil, fmt.Errorf("control %q: %w", c.Key, err)
		}
		controls = append(controls, viewctrls.MapItem{Key: c.Key, Value: def})
	}
	if len(f.Controls) > 0 {
		out = append(out, viewctrls.MapItem{Key: "controls", Value: controls})
	}
	return out, nil
}

func (c *hclControl) raw() (viewctrls.MapSlice, error) {
	var def viewctrls.MapSlice
	for _, v := range []struct {
		key string
		val cty.Value
	}{
		{"label", c.Label},
		{"icon", c.Icon},
		{"this_arg", c.ThisArg},
		{"args", c.Args},
	} {
		goVal, err := fromCty(v.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.key, err)
		}
		if goVal != nil {
			def = append(def, viewctrls.MapItem{Key: v.key, Value: goVal})
		}
	}
	for _, s := range []struct {
		key string
		val *string
	}{
		{"tag", c.Tag},
		{"func", c.Func},
		{"callback", c.Callback},
		{"fn", c.Fn},
	} {
		if s.val != nil {
			def = append(def, viewctrls.MapItem{Key: s.key, Value: *s.val})
		}
	}

	attrs, err := attrPairs(c.Attr)
	if err != nil {
		return nil, err
	}
	if attrs != nil {
		def = append(def, viewctrls.MapItem{Key: "attr", Value: attrs})
	}
	return def, nil
}

func attrPairs(expr hcl.Expression) (any, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attr: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		// not an object literal; hand the value on so the shape check reports it
		return fromCty(val)
	}
	out := make(viewctrls.MapSlice, 0, len(pairs))
	for _, p := range pairs {
		k, diags := p.Key.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attr key: %w", diags)
		}
		if k.Type() != cty.String {
			return nil, fmt.Errorf("attr keys must be strings")
		}
		v, diags := p.Value.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attr %s: %w", k.AsString(), diags)
		}
		goVal, err := fromCty(v)
		if err != nil {
			return nil, fmt.Errorf("attr %s: %w", k.AsString(), err)
		}
		out = append(out, viewctrls.MapItem{Key: k.AsString(), Value: goVal})
	}
	return out, nil
}

// fromCty converts a known cty value into plain Go values. Object and map
// attributes come back sorted by name, which is how cty iterates them.
func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			goVal, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, goVal)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		var out viewctrls.MapSlice
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			goVal, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, viewctrls.MapItem{Key: k.AsString(), Value: goVal})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
