package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/viewctrls"
)

const yamlManifest = `
capitalizeLabels: true
controlClass: btn
controls:
  refresh:
    callback: log
    args: [1, two]
  edit:
    label: Edit
    icon: icon-edit
    tag: button
    func: mark
    attr:
      title: Edit it
      data-x: 1
  remove:
    func: null
    fn: toggle
    args: [gone]
`

const hclManifest = `
capitalize_labels = true
control_class     = "btn"

control "refresh" {
  callback = "log"
  args     = [1, "two"]
}

control "edit" {
  label = "Edit"
  icon  = "icon-edit"
  tag   = "button"
  func  = "mark"
  attr = {
    title    = "Edit it"
    "data-x" = 1
  }
}

control "remove" {
  fn   = "toggle"
  args = ["gone"]
}
`

const tomlManifest = `
capitalizeLabels = true
controlClass = "btn"

[controls.refresh]
callback = "log"
args = [1, "two"]

[controls.edit]
label = "Edit"
icon = "icon-edit"
tag = "button"
func = "mark"

[controls.edit.attr]
title = "Edit it"
data-x = 1

[controls.remove]
fn = "toggle"
args = ["gone"]
`

func TestParseFormatsAgree(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatYAML, yamlManifest},
		{FormatHCL, hclManifest},
		{FormatTOML, tomlManifest},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Parse(tt.format, []byte(tt.src), "controls."+string(tt.format))
			require.NoError(t, err)

			if diff := cmp.Diff([]string{"refresh", "edit", "remove"}, doc.Keys()); diff != "" {
				t.Fatalf("control order (-want +got):\n%s", diff)
			}
			require.NotNil(t, doc.CapitalizeLabels)
			assert.True(t, *doc.CapitalizeLabels)
			require.NotNil(t, doc.ControlClass)
			assert.Equal(t, "btn", *doc.ControlClass)
			assert.Nil(t, doc.WrapperClass)

			refresh, edit, remove := doc.Controls[0], doc.Controls[1], doc.Controls[2]
			assert.Equal(t, "log", refresh.Callback)
			assert.Equal(t, []any{1, "two"}, refresh.Args)

			assert.Equal(t, "Edit", edit.Label)
			assert.Equal(t, "icon-edit", edit.Icon)
			assert.Equal(t, "button", edit.Tag)
			assert.Equal(t, "mark", edit.Func)
			assert.Equal(t, dom.Attrs{dom.A("title", "Edit it"), dom.A("data-x", "1")}, edit.Attr)

			assert.Empty(t, remove.Func)
			assert.Equal(t, "toggle", remove.Fn)
		})
	}
}

func TestDocumentOptions(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte(yamlManifest), "")
	require.NoError(t, err)
	reg := handlers.NewWithBuiltins(nil)

	opts, err := doc.Options(reg, Defaults{ControlClass: "ignored", WrapperClass: "toolbar"})
	require.NoError(t, err)
	assert.True(t, opts.CapitalizeLabels)
	assert.Equal(t, "btn", opts.ControlClass)
	assert.Equal(t, "toolbar", opts.WrapperClass)
	assert.Equal(t, []string{"refresh", "edit", "remove"}, opts.Controls.Keys())

	remove, _ := opts.Controls.Get("remove")
	_, alias := remove.ResolveCallback()
	assert.Equal(t, "fn", alias)

	container := dom.New("div")
	inst, err := viewctrls.New(nil).Initialize(container, opts)
	require.NoError(t, err)
	edit := inst.Control("edit")
	assert.Equal(t, "button", edit.Tag())
	require.NoError(t, edit.Click())
	assert.Equal(t, "1", edit.AttrOr(handlers.AttrClicked, ""))
	require.NoError(t, inst.Control("remove").Click())
	assert.True(t, inst.Control("remove").HasClass("gone"))
}

func TestDocumentOptionsUnknownHandler(t *testing.T) {
	doc, err := Parse(FormatYAML, []byte("controls:\n  a: {func: mrak}\n"), "")
	require.NoError(t, err)

	_, err = doc.Options(handlers.NewWithBuiltins(nil), Defaults{})
	var unknown *handlers.UnknownHandlerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mark", unknown.Suggestion)
	assert.Contains(t, err.Error(), `control "a" func`)
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind viewctrls.ErrorKind
	}{
		{"controls list", "controls: []\n", viewctrls.KindType},
		{"top-level list", "- a\n", viewctrls.KindType},
		{"control scalar", "controls:\n  a: edit\n", viewctrls.KindType},
		{"func number", "controls:\n  a: {func: 3}\n", viewctrls.KindType},
		{"attr list", "controls:\n  a: {func: noop, attr: [x]}\n", viewctrls.KindType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(FormatYAML, []byte(tt.src), "")
			require.Error(t, err)
			assert.Equal(t, tt.kind, viewctrls.KindOf(err))
		})
	}
}

func TestEmptyControlsFailValidation(t *testing.T) {
	for _, src := range []string{"controls: {}\n", "", "controlClass: x\n"} {
		doc, err := Parse(FormatYAML, []byte(src), "")
		require.NoError(t, err)
		opts, err := doc.Options(handlers.NewWithBuiltins(nil), Defaults{})
		require.NoError(t, err)
		assert.ErrorIs(t, viewctrls.Validate(opts.Controls), viewctrls.ErrConfigEmpty)
	}
}

func TestMissingCallbackFromManifest(t *testing.T) {
	doc, err := Parse(FormatHCL, []byte(`control "a" {}`), "a.hcl")
	require.NoError(t, err)
	opts, err := doc.Options(handlers.NewWithBuiltins(nil), Defaults{})
	require.NoError(t, err)

	_, err = viewctrls.New(nil).Initialize(dom.New("div"), opts)
	var ve *viewctrls.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, viewctrls.KindMissingCallback, ve.Kind)
	assert.Equal(t, "a", ve.Key)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "controls.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlManifest), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"refresh", "edit", "remove"}, doc.Keys())

	_, err = Load(filepath.Join(dir, "controls.json"))
	assert.ErrorContains(t, err, "unsupported manifest extension")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	doc, err := Parse(FormatHCL, []byte(hclManifest), "m.hcl")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, doc))

	again, err := Parse(FormatYAML, buf.Bytes(), "")
	require.NoError(t, err)
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s\n%s", diff, buf.String())
	}
	assert.Contains(t, buf.String(), "args: [1, two]")
}

func TestIconHTML(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatYAML, "controls:\n  edit:\n    icon: {html: '<i class=\"fa fa-edit\"></i>'}\n    func: mark\n"},
		{FormatHCL, "control \"edit\" {\n  icon = { html = \"<i class=\\\"fa fa-edit\\\"></i>\" }\n  func = \"mark\"\n}\n"},
		{FormatTOML, "[controls.edit]\nicon = { html = '<i class=\"fa fa-edit\"></i>' }\nfunc = \"mark\"\n"},
	}
	reg := handlers.NewWithBuiltins(nil)
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := Parse(tt.format, []byte(tt.src), "controls."+string(tt.format))
			require.NoError(t, err)
			assert.Equal(t, viewctrls.MapSlice{{Key: IconHTML, Value: `<i class="fa fa-edit"></i>`}}, doc.Controls[0].Icon)

			opts, err := doc.Options(reg, Defaults{})
			require.NoError(t, err)
			c, _ := opts.Controls.Get("edit")
			icon, ok := c.Icon.(*dom.Element)
			require.True(t, ok, "%T", c.Icon)
			assert.Equal(t, "i", icon.Tag())

			again, err := doc.Options(reg, Defaults{})
			require.NoError(t, err)
			c2, _ := again.Controls.Get("edit")
			assert.NotSame(t, icon, c2.Icon, "each call parses a new element")

			container := dom.New("div")
			inst, err := viewctrls.New(nil).Initialize(container, opts)
			require.NoError(t, err)
			assert.Equal(t, `<i class="fa fa-edit viewctrl-icon"></i>`, inst.Control("edit").FirstChild().OuterHTML())
		})
	}
}

func TestIconHTMLEncodes(t *testing.T) {
	doc := &Document{Controls: []Control{{
		Key:  "edit",
		Icon: viewctrls.MapSlice{{Key: IconHTML, Value: `<b>*</b>`}},
		Func: "mark",
	}}}
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, doc))
	again, err := Parse(FormatYAML, buf.Bytes(), "")
	require.NoError(t, err)
	assert.Equal(t, doc.Controls[0].Icon, again.Controls[0].Icon)

	text, err := EncodeValue(doc.Controls[0].Icon)
	require.NoError(t, err)
	v, err := DecodeValue(text)
	require.NoError(t, err)
	assert.Equal(t, doc.Controls[0].Icon, v)
}

func TestIconHTMLErrors(t *testing.T) {
	_, err := Parse(FormatYAML, []byte("controls:\n  edit:\n    icon: {html: '<i></i>', class: x}\n    func: mark\n"), "")
	var ve *viewctrls.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, viewctrls.KindType, ve.Kind)
	assert.Equal(t, "edit", ve.Key)
	assert.Equal(t, "icon", ve.Field)

	doc, err := Parse(FormatYAML, []byte("controls:\n  edit:\n    icon: {html: '<i></i><b></b>'}\n    func: mark\n"), "")
	require.NoError(t, err)
	_, err = doc.Options(handlers.NewWithBuiltins(nil), Defaults{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, viewctrls.KindInvalidIcon, ve.Kind)
	assert.Equal(t, "edit", ve.Key)
}
