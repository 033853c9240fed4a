/*
Package resources holds the built-in stylesheets of the styling engine.

The user-agent stylesheet and the quirks-mode stylesheet are compiled
into the binary and parsed exactly once per process. The engine cannot
produce any correct style without its baseline rules, so a failure to
parse them terminates the process; partial operation is not offered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package resources

import (
	_ "embed"
	"os"
	"sync"

	"github.com/npillmayer/cascade/style/cssom"
	"github.com/npillmayer/cascade/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cascade.resources'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.resources")
}

//go:embed ua.css
var uaCSS string

//go:embed quirks.css
var quirksCSS string

var loadOnce sync.Once
var uaSheets []cssom.StyleSheet
var quirksSheet cssom.StyleSheet

func load() {
	ua := mustParse("ua.css", uaCSS)
	uaSheets = []cssom.StyleSheet{ua}
	quirksSheet = mustParse("quirks.css", quirksCSS)
}

func mustParse(name string, csstext string) cssom.StyleSheet {
	sheet, err := douceuradapter.Parse(csstext, cssom.OriginUserAgent)
	if err != nil {
		tracer().Errorf("failed to load built-in stylesheet %s: %v", name, err)
		os.Exit(1)
	}
	return sheet
}

// UserAgentStyles returns the built-in user-agent stylesheets, loaded
// once per process and held immutably for the process lifetime.
func UserAgentStyles() []cssom.StyleSheet {
	loadOnce.Do(load)
	return uaSheets
}

// QuirksModeStyles returns the stylesheet applied in quirks mode only.
func QuirksModeStyles() cssom.StyleSheet {
	loadOnce.Do(load)
	return quirksSheet
}
