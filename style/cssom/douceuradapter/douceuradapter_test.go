package douceuradapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/cascade/style/cssom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestParseSimpleSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	sheet, err := Parse(`
p { margin-top: 15px; color: red !important; }
h1, h2 { font-weight: bold; }
`, cssom.OriginAuthor)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	if sheet.Empty() {
		t.Fatal("expected sheet not to be empty, is")
	}
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, have %d", len(rules))
	}
	r := rules[0]
	if len(r.Selectors()) != 1 || r.Selectors()[0] != "p" {
		t.Errorf("expected first rule's selector to be 'p', is %v", r.Selectors())
	}
	if v := r.Value("margin-top"); v.String() != "15px" {
		t.Errorf("expected margin-top to be 15px, is %q", v)
	}
	if r.IsImportant("margin-top") {
		t.Error("expected margin-top not to be important, is")
	}
	if !r.IsImportant("color") {
		t.Error("expected color to be important, isn't")
	}
	if len(rules[1].Selectors()) != 2 {
		t.Errorf("expected h1,h2 to carry two selector groups, is %v", rules[1].Selectors())
	}
	if sheet.Origin() != cssom.OriginAuthor {
		t.Errorf("expected author origin, is %v", sheet.Origin())
	}
}

func TestParseMediaBlock(t *testing.T) {
	sheet, err := Parse(`
body { color: black; }
@media screen and (min-width: 600px) {
  body { color: navy; }
}
`, cssom.OriginAuthor)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("expected @media rules to be flattened into 2 rules, have %d", len(rules))
	}
	if rules[0].Condition() != "" {
		t.Errorf("expected top-level rule to be unconditional, is %q", rules[0].Condition())
	}
	if rules[1].Condition() != "screen and (min-width: 600px)" {
		t.Errorf("expected embedded rule to carry media condition, is %q", rules[1].Condition())
	}
}

func TestParseViewportRule(t *testing.T) {
	sheet, err := Parse(`
@viewport { width: 640px; height: auto; }
div { color: green; }
`, cssom.OriginAuthor)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	vp := sheet.Viewport()
	if len(vp) != 1 {
		t.Fatalf("expected 1 viewport rule, have %d", len(vp))
	}
	if vp[0].Condition != "" {
		t.Errorf("expected top-level @viewport to be unconditional, is %q", vp[0].Condition)
	}
	decls := vp[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("expected 2 viewport declarations, have %d", len(decls))
	}
	if decls[0].Key != "width" || decls[0].Value.String() != "640px" {
		t.Errorf("expected width:640px, is %s:%s", decls[0].Key, decls[0].Value)
	}
	if len(sheet.Rules()) != 1 {
		t.Errorf("expected @viewport not to appear among style rules")
	}
}

func TestParseViewportRuleInMediaBlock(t *testing.T) {
	sheet, err := Parse(`
@media print {
  @viewport { width: 500px; }
}
`, cssom.OriginAuthor)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	vp := sheet.Viewport()
	if len(vp) != 1 {
		t.Fatalf("expected 1 viewport rule, have %d", len(vp))
	}
	if vp[0].Condition != "print" {
		t.Errorf("expected nested @viewport to carry the media condition, is %q", vp[0].Condition)
	}
}

func TestRuleDeclarationsKeepDuplicateKeys(t *testing.T) {
	sheet, err := Parse("p { color: red; color: blue !important; }", cssom.OriginAuthor)
	if err != nil {
		t.Fatalf("cannot parse stylesheet: %v", err)
	}
	decls := sheet.Rules()[0].Declarations()
	if len(decls) != 2 {
		t.Fatalf("expected both duplicate-key declarations, have %d", len(decls))
	}
	if decls[0].Key != "color" || decls[0].Value.String() != "red" || decls[0].Important {
		t.Errorf("expected first declaration color:red (normal), is %+v", decls[0])
	}
	if decls[1].Key != "color" || decls[1].Value.String() != "blue" || !decls[1].Important {
		t.Errorf("expected second declaration color:blue !important, is %+v", decls[1])
	}
}

func TestAppendRules(t *testing.T) {
	a, _ := Parse("p { color: red; }", cssom.OriginAuthor)
	b, _ := Parse("div { color: blue; }", cssom.OriginAuthor)
	a.AppendRules(b)
	if len(a.Rules()) != 2 {
		t.Errorf("expected 2 rules after append, have %d", len(a.Rules()))
	}
}

func TestParseInline(t *testing.T) {
	inline, err := ParseInline("color: green; margin: 0 !important")
	if err != nil {
		t.Fatalf("cannot parse style attribute: %v", err)
	}
	if inline.IsEmpty() {
		t.Fatal("expected inline style not to be empty, is")
	}
	if len(inline.Normal) != 1 || inline.Normal[0].Key != "color" {
		t.Errorf("expected one normal declaration 'color', is %v", inline.Normal)
	}
	if len(inline.Important) != 1 || inline.Important[0].Key != "margin" {
		t.Errorf("expected one important declaration 'margin', is %v", inline.Important)
	}
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	input := `<html><head>
<style media="print">p { color: black; }</style>
</head><body>
<style>span { color: gray; }</style>
<p>hello</p>
</body></html>`
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("cannot parse test HTML: %v", err)
	}
	sheets := ExtractStyleElements(doc)
	if len(sheets) != 2 {
		t.Fatalf("expected 2 extracted stylesheets, have %d", len(sheets))
	}
	if sheets[0].Media() != "print" {
		t.Errorf("expected first sheet's media to be 'print', is %q", sheets[0].Media())
	}
	if sheets[1].Media() != "" {
		t.Errorf("expected second sheet to be unguarded, is %q", sheets[1].Media())
	}
	if sheets[0].Origin() != cssom.OriginAuthor {
		t.Errorf("expected extracted sheets to be author origin")
	}
}
