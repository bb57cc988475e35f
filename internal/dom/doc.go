// Package dom is a small in-process element tree.
//
// It models the part of a browser DOM that control hosts rely on:
// - tag names, ordered attributes and the class list
// - parent/child structure with append, prepend and removal
// - event listeners with bubbling from the target to the root
// - HTML serialization and fragment parsing
//
// Not modeled: styles, layout, focus, text editing.
package dom
