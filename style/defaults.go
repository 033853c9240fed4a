package style

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in memory,
// but rather will be treated implicitely by rendering code.
var nonInherited = map[string]string{
	"position":            "static",
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"flow-from":           "none",
	"flow-into":           "none",
}

var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	p := NullStyle
	switch key {
	case "display":
		p = DisplayPropertyForHTMLNode(node)
	default:
		if dim, ok := isDimension[key]; ok {
			return Property(dim)
		}
		if p, ok := nonInherited[key]; ok {
			return Property(p)
		}
	}
	return p
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head":
		return "none"
	case "p":
		return "block-inline"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section",
		"ul":
		return "block"
	case "i", "b", "span", "strong":
		return "inline"
	}
	tracer().Infof("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}

// InitializeDefaultPropertyValues creates a property map holding the initial
// values for CSS properties, i.e. the values an unstyled document root
// starts out with. In real-world browsers these correspond to the
// user-agent defaults.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	pmap := NewPropertyMap()

	x := NewPropertyGroup(PGX) // special group for extension properties
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	pmap.AddAllFromGroup(x, true)

	margins := NewPropertyGroup(PGMargins)
	for _, d := range fourDirs {
		margins.Set("margin-"+d, "0")
	}
	pmap.AddAllFromGroup(margins, true)

	padding := NewPropertyGroup(PGPadding)
	for _, d := range fourDirs {
		padding.Set("padding-"+d, "0")
	}
	pmap.AddAllFromGroup(padding, true)

	border := NewPropertyGroup(PGBorder)
	for _, d := range fourDirs {
		border.Set("border-"+d+"-color", "default")
		border.Set("border-"+d+"-width", "medium")
		border.Set("border-"+d+"-style", "solid")
	}
	for _, c := range fourCorners {
		border.Set("border-"+c+"-radius", "0")
	}
	pmap.AddAllFromGroup(border, true)

	dim := NewPropertyGroup(PGDimension)
	dim.Set("width", "auto")
	dim.Set("height", "auto")
	dim.Set("min-width", "none")
	dim.Set("min-height", "none")
	dim.Set("max-width", "none")
	dim.Set("max-height", "none")
	pmap.AddAllFromGroup(dim, true)

	disp := NewPropertyGroup(PGDisplay)
	disp.Set("display", "block")
	disp.Set("float", "none")
	disp.Set("visibility", "visible")
	disp.Set("position", "static")
	pmap.AddAllFromGroup(disp, true)

	region := NewPropertyGroup(PGRegion)
	region.Set("flow-from", "none")
	region.Set("flow-into", "none")
	pmap.AddAllFromGroup(region, true)

	color := NewPropertyGroup(PGColor)
	color.Set("color", "black")
	color.Set("background-color", "default")
	pmap.AddAllFromGroup(color, true)

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("word-wrap", "normal")
	pmap.AddAllFromGroup(text, true)

	return pmap
}
