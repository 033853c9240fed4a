package bloom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"hash/fnv"
	"strings"

	"golang.org/x/net/html"
)

const (
	keySize   = 12
	arraySize = 1 << keySize
	keyMask   = arraySize - 1
)

// Filter is a counting Bloom filter with 8-bit counters and two hash
// functions, intended to track the ancestors of an element during a
// document-tree traversal.
//
// Clients push an element when the traversal descends into it and pop it
// when the traversal moves back up. Selector matching then asks the filter
// wether a given ancestor-selector component may match any ancestor at all:
// a negative answer is authoritative, a positive answer has to be verified
// by exact matching.
//
// A Filter is not safe for concurrent mutation. Parallel traversals each
// maintain a filter of their own (filters for subtrees can be seeded from
// a clone of the parent's filter).
type Filter struct {
	counters [arraySize]uint8
}

// New creates an empty ancestor filter.
func New() *Filter {
	return &Filter{}
}

// Clone returns a copy of the filter, for handing down to a subtree
// traversal.
func (f *Filter) Clone() *Filter {
	c := &Filter{}
	c.counters = f.counters
	return c
}

// Clear resets the filter to empty.
func (f *Filter) Clear() {
	f.counters = [arraySize]uint8{}
}

// Hash returns the hash code the filter uses for a selector component
// string. Selector compilation stores these hashes alongside compiled
// selectors, so that lookup does not have to re-hash per element.
func Hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func (f *Filter) first(hash uint32) *uint8 {
	return &f.counters[hash&keyMask]
}

func (f *Filter) second(hash uint32) *uint8 {
	return &f.counters[(hash>>keySize)&keyMask]
}

// InsertHash adds a pre-computed hash to the filter.
func (f *Filter) InsertHash(hash uint32) {
	if c := f.first(hash); *c < 0xff {
		*c++
	}
	if c := f.second(hash); *c < 0xff {
		*c++
	}
}

// RemoveHash removes a pre-computed hash from the filter. Counters
// saturated at 0xff are left untouched; such a filter over-approximates,
// which is safe (it can only cause spurious exact-match checks).
func (f *Filter) RemoveHash(hash uint32) {
	if c := f.first(hash); *c != 0xff && *c > 0 {
		*c--
	}
	if c := f.second(hash); *c != 0xff && *c > 0 {
		*c--
	}
}

// MayContainHash checks wether the hash may have been inserted. False
// negatives are impossible, false positives are.
func (f *Filter) MayContainHash(hash uint32) bool {
	return *f.first(hash) > 0 && *f.second(hash) > 0
}

// InsertElement adds the relevant components of an element (tag name, id
// and classes) to the filter.
func (f *Filter) InsertElement(n *html.Node) {
	for _, h := range elementHashes(n) {
		f.InsertHash(h)
	}
}

// RemoveElement removes the components of an element from the filter.
func (f *Filter) RemoveElement(n *html.Node) {
	for _, h := range elementHashes(n) {
		f.RemoveHash(h)
	}
}

func elementHashes(n *html.Node) []uint32 {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	hashes := make([]uint32, 0, 4)
	hashes = append(hashes, Hash(strings.ToLower(n.Data)))
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			hashes = append(hashes, Hash("#"+a.Val))
		case "class":
			for _, c := range strings.Fields(a.Val) {
				hashes = append(hashes, Hash("."+c))
			}
		}
	}
	return hashes
}
