package stylist

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// DumpRuleIndexes returns a tree-shaped dump of all rule indexes; used
// for debugging.
func (s *Stylist) DumpRuleIndexes() string {
	tree := tp.New()
	dumpScope(tree.AddBranch("element scope"), s.elementMap)
	for pseudo, scope := range s.pseudosMap {
		dumpScope(tree.AddBranch(pseudo.String()), scope)
	}
	for pseudo, decls := range s.precomputed {
		branch := tree.AddBranch(pseudo.String() + " (precomputed)")
		for _, d := range decls {
			branch.AddNode(fmt.Sprintf("%d declarations, spec=%d, order=%d",
				len(d.Declarations), d.Specificity, d.SourceOrder))
		}
	}
	return tree.String()
}

func dumpScope(branch tp.Tree, scope *scopeMaps) {
	for _, o := range []struct {
		name string
		maps *originMaps
	}{
		{"user-agent", &scope.userAgent},
		{"user", &scope.user},
		{"author", &scope.author},
	} {
		if o.maps.normal.isEmpty() && o.maps.important.isEmpty() {
			continue
		}
		ob := branch.AddBranch(o.name)
		dumpRuleMap(ob.AddBranch("normal"), &o.maps.normal)
		dumpRuleMap(ob.AddBranch("important"), &o.maps.important)
	}
}

func dumpRuleMap(branch tp.Tree, m *ruleMap) {
	add := func(r Rule) {
		branch.AddNode(fmt.Sprintf("%v  (spec=%d, order=%d)",
			r.Selector, r.Selector.Specificity(), r.SourceOrder))
	}
	for _, rules := range m.id {
		for _, r := range rules {
			add(r)
		}
	}
	for _, rules := range m.class {
		for _, r := range rules {
			add(r)
		}
	}
	for _, rules := range m.tag {
		for _, r := range rules {
			add(r)
		}
	}
	for _, r := range m.universal {
		add(r)
	}
}
