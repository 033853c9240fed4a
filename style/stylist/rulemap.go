package stylist

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"

	"github.com/npillmayer/cascade/style"
	"github.com/npillmayer/cascade/style/bloom"
	"github.com/npillmayer/cascade/style/selector"
	"golang.org/x/net/html"
)

// Rule is one compiled selector together with the declarations it
// contributes and its insertion-time source order. Rules are immutable
// once inserted into a rule map.
type Rule struct {
	Selector     *selector.Selector
	Declarations []style.KeyValue
	SourceOrder  int
}

// DeclarationBlock is an ordered sequence of property declarations plus
// the specificity and source order of its originating rule. Cascade
// lookups produce them transiently; the value-computation step consumes
// them immediately.
type DeclarationBlock struct {
	Declarations []style.KeyValue
	Specificity  selector.Specificity
	SourceOrder  int
}

func (db DeclarationBlock) ordersBefore(other DeclarationBlock) bool {
	if db.Specificity != other.Specificity {
		return db.Specificity < other.Specificity
	}
	return db.SourceOrder < other.SourceOrder
}

// ruleMap indexes rules by the fastest discriminating component of their
// selector (id > class > tag > universal), so that lookup only has to
// match candidate rules instead of every rule against every element.
type ruleMap struct {
	id        map[string][]Rule
	class     map[string][]Rule
	tag       map[string][]Rule
	universal []Rule
	count     int
}

func (m *ruleMap) insert(r Rule) {
	key := r.Selector.Key()
	switch key.Kind {
	case selector.KeyID:
		if m.id == nil {
			m.id = make(map[string][]Rule)
		}
		m.id[key.Name] = append(m.id[key.Name], r)
	case selector.KeyClass:
		if m.class == nil {
			m.class = make(map[string][]Rule)
		}
		m.class[key.Name] = append(m.class[key.Name], r)
	case selector.KeyTag:
		if m.tag == nil {
			m.tag = make(map[string][]Rule)
		}
		m.tag[key.Name] = append(m.tag[key.Name], r)
	default:
		m.universal = append(m.universal, r)
	}
	m.count++
}

func (m *ruleMap) isEmpty() bool {
	return m.count == 0
}

// appendMatchingRules finds all rules matching the element and appends
// their declaration blocks to out, ordered ascending by (specificity,
// source order). The optional ancestor filter rejects rules whose
// ancestor components cannot match; rejected candidates are never false
// negatives, surviving candidates are verified exactly.
func (m *ruleMap) appendMatchingRules(el Element, bf *bloom.Filter,
	out *[]DeclarationBlock, shareable *bool) {
	//
	if m.isEmpty() {
		return
	}
	node := el.HTMLNode()
	if node == nil || node.Type != html.ElementNode {
		return
	}
	st := el.State()
	mark := len(*out)
	for _, a := range node.Attr {
		switch a.Key {
		case "id":
			m.matchCandidates(m.id[a.Val], node, st, bf, out, shareable)
		case "class":
			for _, c := range strings.Fields(a.Val) {
				m.matchCandidates(m.class[c], node, st, bf, out, shareable)
			}
		}
	}
	m.matchCandidates(m.tag[strings.ToLower(node.Data)], node, st, bf, out, shareable)
	m.matchCandidates(m.universal, node, st, bf, out, shareable)

	// candidate buckets do not guarantee cascade order
	matched := (*out)[mark:]
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ordersBefore(matched[j])
	})
}

func (m *ruleMap) matchCandidates(candidates []Rule, node *html.Node,
	st selector.State, bf *bloom.Filter, out *[]DeclarationBlock, shareable *bool) {
	//
	for _, r := range candidates {
		if !r.Selector.MayMatch(bf) {
			continue
		}
		if !r.Selector.Match(node, st) {
			continue
		}
		*out = append(*out, DeclarationBlock{
			Declarations: r.Declarations,
			Specificity:  r.Selector.Specificity(),
			SourceOrder:  r.SourceOrder,
		})
		if !r.Selector.Shareable() {
			*shareable = false
		}
	}
}

// appendUniversalRules appends the declaration blocks of all rules keyed
// universal, ordered ascending by (specificity, source order). Used to
// precompute pseudo-element styles which never depend on a specific
// element.
func (m *ruleMap) appendUniversalRules(out *[]DeclarationBlock) {
	mark := len(*out)
	for _, r := range m.universal {
		*out = append(*out, DeclarationBlock{
			Declarations: r.Declarations,
			Specificity:  r.Selector.Specificity(),
			SourceOrder:  r.SourceOrder,
		})
	}
	blocks := (*out)[mark:]
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].ordersBefore(blocks[j])
	})
}
