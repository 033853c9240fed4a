package stylist

import (
	"strings"

	"github.com/npillmayer/cascade/style/selector"
	"golang.org/x/net/html"
)

// RestyleHint describes which elements have to be restyled after a
// dynamic state change on an element, without re-running full rule
// matching. Hints are sound but may over-report.
type RestyleHint uint8

const (
	// RestyleSelf: the element itself has to be restyled.
	RestyleSelf RestyleHint = 1 << iota
	// RestyleLaterSiblings: the element's later siblings (and their
	// subtrees) have to be restyled.
	RestyleLaterSiblings
	// RestyleDescendants: the element's subtree has to be restyled.
	RestyleDescendants
)

// NoRestyle is the empty hint: nothing has to be recomputed.
const NoRestyle RestyleHint = 0

func (h RestyleHint) String() string {
	if h == NoRestyle {
		return "none"
	}
	var parts []string
	if h&RestyleSelf != 0 {
		parts = append(parts, "self")
	}
	if h&RestyleLaterSiblings != 0 {
		parts = append(parts, "later-siblings")
	}
	if h&RestyleDescendants != 0 {
		parts = append(parts, "descendants")
	}
	return strings.Join(parts, "|")
}

// Snapshot captures the dynamic state and the attributes of an element
// before a change, for comparing against the element's current state.
type Snapshot struct {
	States        selector.State
	HasStates     bool
	Attributes    []html.Attribute
	HasAttributes bool
}

// StateSnapshot creates a snapshot recording only a former state mask.
func StateSnapshot(st selector.State) Snapshot {
	return Snapshot{States: st, HasStates: true}
}

type dependency struct {
	states selector.State
	attrs  bool
	hint   RestyleHint
}

// DependencySet records, for every selector fragment inspecting dynamic
// element state or attributes, which relatives of a changing element are
// affected. It is rebuilt from every inserted selector during a stylist
// rebuild and is immutable in between.
type DependencySet struct {
	deps      []dependency
	stateMask selector.State // union of all state bits, for quick reject
}

// Clear empties the dependency set.
func (ds *DependencySet) Clear() {
	ds.deps = nil
	ds.stateMask = selector.NoState
}

// Len returns the number of recorded dependencies.
func (ds *DependencySet) Len() int {
	return len(ds.deps)
}

// NoteSelector records the dynamic dependencies of a compiled selector.
func (ds *DependencySet) NoteSelector(sel *selector.Selector) {
	for _, dep := range sel.StateDeps() {
		hint := RestyleSelf
		switch dep.Scope {
		case selector.DepSiblings:
			hint = RestyleLaterSiblings
		case selector.DepDescendants:
			hint = RestyleDescendants
		}
		ds.deps = append(ds.deps, dependency{
			states: dep.States,
			attrs:  dep.Attrs,
			hint:   hint,
		})
		ds.stateMask |= dep.States
	}
}

// computeHint determines the restyle hint for an element whose dynamic
// state changed from the snapshot to current. This is an analysis over
// the recorded dependencies, not a rule match: it never under-reports,
// but may over-report.
func (ds *DependencySet) computeHint(el Element, snapshot Snapshot,
	current selector.State) RestyleHint {
	//
	var changed selector.State
	if snapshot.HasStates {
		changed = snapshot.States ^ current
	}
	attrsChanged := snapshot.HasAttributes && !attrsEqual(snapshot.Attributes, elementAttrs(el))
	if changed == selector.NoState && !attrsChanged {
		return NoRestyle
	}
	if !ds.stateMask.Intersects(changed) && !attrsChanged {
		return NoRestyle
	}
	hint := NoRestyle
	for _, dep := range ds.deps {
		if dep.states.Intersects(changed) || (dep.attrs && attrsChanged) {
			hint |= dep.hint
		}
	}
	return hint
}

func elementAttrs(el Element) []html.Attribute {
	if n := el.HTMLNode(); n != nil {
		return n.Attr
	}
	return nil
}

func attrsEqual(a, b []html.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Val != b[i].Val {
			return false
		}
	}
	return true
}
