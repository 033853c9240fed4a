package styledtree

import (
	"strings"
	"testing"

	"github.com/npillmayer/cascade/style/cssom"
	"github.com/npillmayer/cascade/style/cssom/douceuradapter"
	"github.com/npillmayer/cascade/style/resources"
	"github.com/npillmayer/cascade/style/stylist"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"golang.org/x/net/html"
)

const testDoc = `<html><head>
<style>
p { color: green; }
.warn { color: orange; }
</style>
</head><body>
<p>one</p>
<p class="warn">two</p>
<p style="color: red">three</p>
<div><span>deep</span></div>
</body></html>`

func styleTestDoc(t *testing.T, input string) *StyNode {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("cannot parse test HTML: %v", err)
	}
	device := cssom.NewDevice(cssom.MediaScreen, dimen.Point{X: 800 * dimen.PT, Y: 600 * dimen.PT})
	sty := stylist.New(device, stylist.WithBuiltinStyles(
		resources.UserAgentStyles(), resources.QuirksModeStyles()))
	var sheets []cssom.StyleSheet
	for _, s := range douceuradapter.ExtractStyleElements(doc) {
		sheets = append(sheets, s)
	}
	sty.Rebuild(sheets, true)
	root, err := NewStyler(sty).StyleTree(doc)
	if err != nil {
		t.Fatalf("cannot style document: %v", err)
	}
	return root
}

func findStyled(sn *StyNode, match func(*StyNode) bool) *StyNode {
	if match(sn) {
		return sn
	}
	for _, ch := range sn.Children() {
		if r := findStyled(ch, match); r != nil {
			return r
		}
	}
	return nil
}

func byTag(tag string) func(*StyNode) bool {
	return func(sn *StyNode) bool {
		n := sn.HTMLNode()
		return n != nil && n.Type == html.ElementNode && n.Data == tag
	}
}

func byAttr(key, val string) func(*StyNode) bool {
	return func(sn *StyNode) bool {
		n := sn.HTMLNode()
		if n == nil || n.Type != html.ElementNode {
			return false
		}
		for _, a := range n.Attr {
			if a.Key == key && a.Val == val {
				return true
			}
		}
		return false
	}
}

func TestStyleTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	root := styleTestDoc(t, testDoc)
	body := findStyled(root, byTag("body"))
	if body == nil {
		t.Fatal("no styled node for <body>")
	}
	if v := body.GetPropertyValue("color"); v.String() != "black" {
		t.Errorf("expected body color black from user-agent styles, is %q", v)
	}
	p := findStyled(root, byTag("p"))
	if p == nil {
		t.Fatal("no styled node for <p>")
	}
	if v := p.GetPropertyValue("color"); v.String() != "green" {
		t.Errorf("expected author rule to color <p> green, is %q", v)
	}
	if v := p.GetPropertyValue("display"); v.String() != "block" {
		t.Errorf("expected <p> display block, is %q", v)
	}
}

func TestStyleTreeClassAndInline(t *testing.T) {
	root := styleTestDoc(t, testDoc)
	warn := findStyled(root, byAttr("class", "warn"))
	if warn == nil {
		t.Fatal("no styled node for the .warn paragraph")
	}
	if v := warn.GetPropertyValue("color"); v.String() != "orange" {
		t.Errorf("expected class rule to win over tag rule, color is %q", v)
	}
	inline := findStyled(root, byAttr("style", "color: red"))
	if inline == nil {
		t.Fatal("no styled node for the inline-styled paragraph")
	}
	if v := inline.GetPropertyValue("color"); v.String() != "red" {
		t.Errorf("expected inline style to win over author rules, color is %q", v)
	}
}

func TestStyleTreeInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	root := styleTestDoc(t, testDoc)
	span := findStyled(root, byTag("span"))
	if span == nil {
		t.Fatal("no styled node for <span>")
	}
	// no rule sets color on span or div; it inherits down from body
	if v := span.GetPropertyValue("color"); v.String() != "black" {
		t.Errorf("expected <span> to inherit color black, is %q", v)
	}
	if v := span.GetPropertyValue("display"); v.String() != "inline" {
		t.Errorf("expected <span> display inline, is %q", v)
	}
}

func TestStyleTreeShorthandExpansion(t *testing.T) {
	root := styleTestDoc(t, testDoc)
	body := findStyled(root, byTag("body"))
	if body == nil {
		t.Fatal("no styled node for <body>")
	}
	if v, ok := body.Styles().Property("margin-top"); !ok || v.String() != "8px" {
		t.Errorf("expected margin shorthand to expand to margin-top 8px, is %q", v)
	}
}

func TestStyleTreeStructure(t *testing.T) {
	root := styleTestDoc(t, testDoc)
	body := findStyled(root, byTag("body"))
	if len(body.Children()) != 4 {
		t.Fatalf("expected <body> to have 4 styled children, has %d", len(body.Children()))
	}
	div := findStyled(root, byTag("div"))
	span := findStyled(div, byTag("span"))
	if span == nil || span.Parent() != div {
		t.Error("expected <span> to be linked to its <div> parent, isn't")
	}
	if root.Styles() == nil {
		t.Error("expected the tree root to carry default styles, doesn't")
	}
}

func TestStyleTreeNoDocument(t *testing.T) {
	device := cssom.NewDevice(cssom.MediaScreen, dimen.Point{X: 800 * dimen.PT, Y: 600 * dimen.PT})
	sty := stylist.New(device)
	sty.Rebuild(nil, true)
	if _, err := NewStyler(sty).StyleTree(nil); err != ErrNoDocument {
		t.Errorf("expected ErrNoDocument for nil document, is %v", err)
	}
}
