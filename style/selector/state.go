package selector

import "strings"

// State is a bitmask of dynamic element states, i.e. the states an element
// may enter and leave during the lifetime of a document without the
// document tree changing shape. Selectors address them with dynamic
// pseudo-classes like ':hover'.
type State uint16

const (
	// Hover is set while the pointing device rests on the element.
	Hover State = 1 << iota
	// Active is set between press and release of the pointing device.
	Active
	// Focus is set while the element owns the input focus.
	Focus
	// Enabled and Disabled reflect the state of form controls.
	Enabled
	Disabled
	// Checked and Indeterminate reflect checkable form controls.
	Checked
	Indeterminate
	// Target is set on the element addressed by the URL fragment.
	Target
	// Visited and Link reflect the link history of anchor elements.
	Visited
	Link
)

// NoState is the empty state mask.
const NoState State = 0

// Contains checks wether every bit of other is set in s.
func (s State) Contains(other State) bool {
	return s&other == other
}

// Intersects checks wether s and other share at least one bit.
func (s State) Intersects(other State) bool {
	return s&other != 0
}

var stateNames = []struct {
	name string
	bit  State
}{
	{"hover", Hover},
	{"active", Active},
	{"focus", Focus},
	{"enabled", Enabled},
	{"disabled", Disabled},
	{"checked", Checked},
	{"indeterminate", Indeterminate},
	{"target", Target},
	{"visited", Visited},
	{"link", Link},
}

// stateForPseudoClass maps a dynamic pseudo-class name to its state bit.
// Returns NoState for pseudo-classes which are not dynamic (structural
// pseudo-classes like 'first-child' are handled by the matcher itself).
func stateForPseudoClass(name string) State {
	for _, sn := range stateNames {
		if sn.name == name {
			return sn.bit
		}
	}
	return NoState
}

func (s State) String() string {
	if s == NoState {
		return "none"
	}
	var b strings.Builder
	for _, sn := range stateNames {
		if s.Contains(sn.bit) {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(sn.name)
		}
	}
	return b.String()
}
