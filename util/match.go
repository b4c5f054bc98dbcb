package util

import (
	"github.com/gobwas/glob"
)

// MatchString reports whether s matches at least one of the wildcard
// patterns. Patterns use glob syntax ("*thing", "release/*"). Invalid
// patterns never match.
func MatchString(s string, patterns []string) bool {
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		if g.Match(s) {
			return true
		}
	}
	return false
}

// MatchKeyMap is a map whose lookups fall back to wildcard-pattern keys.
// An exact key wins; otherwise the first pattern key that matches is used.
type MatchKeyMap[V any] map[string]V

// Get returns the value for key, trying an exact match first and wildcard
// pattern keys second.
func (m MatchKeyMap[V]) Get(key string) (V, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for pattern, v := range m {
		if MatchString(key, []string{pattern}) {
			return v, true
		}
	}
	var zero V
	return zero, false
}
