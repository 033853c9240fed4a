package bloom

import (
	"fmt"
	"testing"

	"golang.org/x/net/html"
)

func TestBloomInsertRemove(t *testing.T) {
	f := New()
	f.InsertHash(Hash("div"))
	if !f.MayContainHash(Hash("div")) {
		t.Error("expected filter to contain 'div' after insert, doesn't")
	}
	f.RemoveHash(Hash("div"))
	if f.MayContainHash(Hash("div")) {
		t.Error("expected filter to have dropped 'div' after remove, hasn't")
	}
}

func TestBloomNoFalseNegatives(t *testing.T) {
	f := New()
	for i := 0; i < 1000; i++ {
		f.InsertHash(Hash(fmt.Sprintf("key-%d", i)))
	}
	for i := 0; i < 1000; i++ {
		if !f.MayContainHash(Hash(fmt.Sprintf("key-%d", i))) {
			t.Fatalf("false negative for key-%d", i)
		}
	}
}

func TestBloomElementComponents(t *testing.T) {
	n := &html.Node{
		Type: html.ElementNode,
		Data: "div",
		Attr: []html.Attribute{
			{Key: "id", Val: "x"},
			{Key: "class", Val: "a b"},
		},
	}
	f := New()
	f.InsertElement(n)
	for _, key := range []string{"div", "#x", ".a", ".b"} {
		if !f.MayContainHash(Hash(key)) {
			t.Errorf("expected component %q in filter, isn't", key)
		}
	}
	f.RemoveElement(n)
	if f.MayContainHash(Hash("#x")) {
		t.Error("expected '#x' to be gone after element removal, isn't")
	}
}
