package stylist

import (
	"testing"

	"github.com/npillmayer/cascade/style/selector"
	"golang.org/x/net/html"
)

func compileForTest(t *testing.T, sel string) *selector.Selector {
	t.Helper()
	s, err := selector.Compile(sel)
	if err != nil {
		t.Fatalf("cannot compile selector %q: %v", sel, err)
	}
	return s
}

func TestDependencySetNoteSelector(t *testing.T) {
	var ds DependencySet
	ds.NoteSelector(compileForTest(t, "div"))
	if ds.Len() != 0 {
		t.Errorf("expected static selector to record no dependencies, has %d", ds.Len())
	}
	ds.NoteSelector(compileForTest(t, "a:hover"))
	ds.NoteSelector(compileForTest(t, "input:checked + label"))
	if ds.Len() != 2 {
		t.Errorf("expected 2 dependencies, have %d", ds.Len())
	}
	ds.Clear()
	if ds.Len() != 0 {
		t.Errorf("expected cleared set to be empty, has %d", ds.Len())
	}
}

func TestAttributeChangeHint(t *testing.T) {
	var ds DependencySet
	ds.NoteSelector(compileForTest(t, "[title] span"))

	doc := parseFragment(t, `<div title="old"><span>x</span></div>`)
	div := findElement(doc, "div")
	el := NewDomElement(div)

	before := Snapshot{Attributes: copyAttrs(div.Attr), HasAttributes: true}
	hint := ds.computeHint(el, before, selector.NoState)
	if hint != NoRestyle {
		t.Errorf("expected no hint without an attribute change, is %v", hint)
	}
	div.Attr[0].Val = "new"
	hint = ds.computeHint(el, before, selector.NoState)
	if hint&RestyleDescendants == 0 {
		t.Errorf("expected attribute change to hint restyle-descendants, is %v", hint)
	}
}

func copyAttrs(attrs []html.Attribute) []html.Attribute {
	cp := make([]html.Attribute, len(attrs))
	copy(cp, attrs)
	return cp
}
