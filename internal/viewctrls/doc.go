// Package viewctrls attaches named, clickable controls to a container
// element from a declarative ControlSet.
//
// Initialize validates the set, resolves every control into a descriptor
// (label, tag, attributes, icon), rebuilds the container's wrapper and
// binds one click listener per control. Repeated calls on the same
// container accumulate controls: known keys are replaced in place, new keys
// are appended, and the whole wrapper is rebuilt. A failed call leaves the
// container and the accumulated set exactly as they were.
//
// Rendered contract:
//
//	<div class="viewctrls-wrapper [wrapperClass]">
//	  <span class="viewctrl [proper-case] [controlClass] [attr.class]"
//	        data-label="..." data-key="...">
//	    <span class="<icon> viewctrl-icon"></span>
//	  </span>
//	</div>
package viewctrls
