/*
Package style provides primitives for CSS styling properties.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

Styling of a document is expressed with CSS properties, which are
key/value pairs attached to nodes of the document tree. This package
holds the basic property types, the partitioning of properties into
property groups, and the property maps which the cascade produces for
every styled node.

The hard part of styling, deciding which rules apply to which element and
in which order their declarations have to be merged, lives in package
stylist. Package style knows nothing about selectors or rule matching.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'cascade.style'
func tracer() tracing.Trace {
	return tracing.Select("cascade.style")
}
