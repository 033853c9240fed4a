package selector

import (
	"strings"
	"testing"

	"github.com/npillmayer/cascade/style/bloom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, input string) *html.Node {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("cannot parse test HTML: %v", err)
	}
	return doc
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(ch, tag); r != nil {
			return r
		}
	}
	return nil
}

func TestCompileKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.selector")
	defer teardown()
	//
	cases := []struct {
		sel  string
		kind KeyKind
		name string
	}{
		{"#x", KeyID, "x"},
		{"div#x.a", KeyID, "x"},
		{".a", KeyClass, "a"},
		{"div.a", KeyClass, "a"},
		{"div", KeyTag, "div"},
		{"ul li", KeyTag, "li"},
		{"*", KeyUniversal, ""},
		{":hover", KeyUniversal, ""},
	}
	for _, c := range cases {
		sel, err := Compile(c.sel)
		if err != nil {
			t.Fatalf("cannot compile %q: %v", c.sel, err)
		}
		if sel.Key().Kind != c.kind || sel.Key().Name != c.name {
			t.Errorf("expected key of %q to be (%v,%q), is (%v,%q)",
				c.sel, c.kind, c.name, sel.Key().Kind, sel.Key().Name)
		}
	}
}

func TestCompileSpecificityOrdering(t *testing.T) {
	lo, err := Compile(".a")
	if err != nil {
		t.Fatal(err)
	}
	hi, err := Compile("#x")
	if err != nil {
		t.Fatal(err)
	}
	if !(lo.Specificity() < hi.Specificity()) {
		t.Errorf("expected spec(.a)=%d < spec(#x)=%d, isn't",
			lo.Specificity(), hi.Specificity())
	}
	tag, _ := Compile("div")
	if !(tag.Specificity() < lo.Specificity()) {
		t.Errorf("expected tag specificity below class specificity")
	}
}

func TestCompileDynamicState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.selector")
	defer teardown()
	//
	sel, err := Compile("a:hover")
	if err != nil {
		t.Fatalf("cannot compile a:hover: %v", err)
	}
	doc := parseFragment(t, `<a href="#">link</a>`)
	anchor := findElement(doc, "a")
	if sel.Match(anchor, NoState) {
		t.Error("expected a:hover not to match without hover state, does")
	}
	if !sel.Match(anchor, Hover|Focus) {
		t.Error("expected a:hover to match with hover state, doesn't")
	}
	// a stripped pseudo-class still weighs like a class
	plain, _ := Compile("a")
	if !(plain.Specificity() < sel.Specificity()) {
		t.Error("expected :hover to add class-level specificity, doesn't")
	}
}

func TestCompilePseudoElement(t *testing.T) {
	cases := []struct {
		sel    string
		pseudo PseudoElement
	}{
		{"div::before", Before},
		{"div:after", After}, // legacy single-colon form
		{"p::first-line", FirstLine},
		{"div", NoPseudo},
	}
	for _, c := range cases {
		sel, err := Compile(c.sel)
		if err != nil {
			t.Fatalf("cannot compile %q: %v", c.sel, err)
		}
		if sel.Pseudo() != c.pseudo {
			t.Errorf("expected pseudo of %q to be %v, is %v", c.sel, c.pseudo, sel.Pseudo())
		}
	}
}

func TestCompileDepScopes(t *testing.T) {
	sel, err := Compile("div:hover > p + span.note")
	if err != nil {
		t.Fatalf("cannot compile: %v", err)
	}
	deps := sel.StateDeps()
	if len(deps) != 1 {
		t.Fatalf("expected 1 dependency, have %d", len(deps))
	}
	if deps[0].States != Hover || deps[0].Scope != DepDescendants {
		t.Errorf("expected hover/descendants dependency, is %v/%v",
			deps[0].States, deps[0].Scope)
	}
	sel2, _ := Compile("li:focus ~ li")
	deps2 := sel2.StateDeps()
	if len(deps2) != 1 || deps2[0].Scope != DepSiblings {
		t.Errorf("expected sibling-scope dependency, is %#v", deps2)
	}
	sel3, _ := Compile("input:checked")
	deps3 := sel3.StateDeps()
	if len(deps3) != 1 || deps3[0].Scope != DepSelf {
		t.Errorf("expected self-scope dependency, is %#v", deps3)
	}
}

func TestCompileShareable(t *testing.T) {
	shareable := []string{"div", ".a", "#x", "ul li", "div > p.text"}
	for _, s := range shareable {
		sel, err := Compile(s)
		if err != nil {
			t.Fatal(err)
		}
		if !sel.Shareable() {
			t.Errorf("expected %q to be shareable, isn't", s)
		}
	}
	unshareable := []string{"a:hover", "[title]", "li + li", "p:first-child", "div::before"}
	for _, s := range unshareable {
		sel, err := Compile(s)
		if err != nil {
			t.Fatal(err)
		}
		if sel.Shareable() {
			t.Errorf("expected %q not to be shareable, is", s)
		}
	}
}

func TestAncestorHashesWithBloomFilter(t *testing.T) {
	sel, err := Compile("nav.menu li a")
	if err != nil {
		t.Fatal(err)
	}
	f := bloom.New()
	if sel.MayMatch(f) {
		t.Error("expected empty filter to reject ancestor components, doesn't")
	}
	f.InsertHash(bloom.Hash("nav"))
	f.InsertHash(bloom.Hash(".menu"))
	f.InsertHash(bloom.Hash("li"))
	if !sel.MayMatch(f) {
		t.Error("expected filter with all ancestor components to pass, doesn't")
	}
	if !sel.MayMatch(nil) {
		t.Error("expected nil filter never to reject, does")
	}
	// components left of a sibling combinator are not ancestors
	sib, _ := Compile("h1 + p em")
	f2 := bloom.New()
	f2.InsertHash(bloom.Hash("p"))
	if !sib.MayMatch(f2) {
		t.Error("expected sibling component 'h1' not to be required, is")
	}
}

func TestCompileGroup(t *testing.T) {
	sels, err := CompileGroup("h1, h2, h3.title")
	if err != nil {
		t.Fatal(err)
	}
	if len(sels) != 3 {
		t.Fatalf("expected 3 selectors, have %d", len(sels))
	}
	if sels[2].Key().Kind != KeyClass {
		t.Errorf("expected h3.title to be keyed by class, isn't")
	}
}

func TestCompileErrors(t *testing.T) {
	for _, s := range []string{"", "   ", "> div", "div >", "a[title"} {
		if _, err := Compile(s); err == nil {
			t.Errorf("expected compiling %q to fail, didn't", s)
		}
	}
}
