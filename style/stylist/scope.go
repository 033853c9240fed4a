package stylist

import "github.com/npillmayer/cascade/style/cssom"

// originMaps groups the rules of one stylesheet origin into a
// normal-importance and an important-importance rule index. A rule is
// stored in exactly one importance slot; a rule carrying declarations of
// both importances is split into two entries sharing the same selector.
type originMaps struct {
	normal    ruleMap
	important ruleMap
}

// scopeMaps holds the rule indexes for one pseudo-element identity
// (including "no pseudo-element"): one originMaps per stylesheet origin.
type scopeMaps struct {
	userAgent originMaps
	user      originMaps
	author    originMaps
}

func newScopeMaps() *scopeMaps {
	return &scopeMaps{}
}

func (s *scopeMaps) forOrigin(o cssom.Origin) *originMaps {
	switch o {
	case cssom.OriginUserAgent:
		return &s.userAgent
	case cssom.OriginUser:
		return &s.user
	}
	return &s.author
}

func (s *scopeMaps) ruleCount() int {
	count := 0
	for _, om := range []*originMaps{&s.userAgent, &s.user, &s.author} {
		count += om.normal.count + om.important.count
	}
	return count
}
