/*
Package styledtree builds a styled tree on top of an HTML parse tree.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

A styled tree mirrors the element structure of an HTML document and
attaches a computed property map to every element node. The tree is built
by walking the document and, per element, asking a stylist for the
applicable declarations; sibling subtrees are styled concurrently against
the stylist's read-only snapshot.

Property lookup on a styled node respects CSS inheritance: inheritable
properties cascade to the enclosing style if unset locally.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.dom'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.dom")
}
