// Package rules provides operations over dotted metadata dependency paths such as
// "dataElementGroups.dataElements.attributes".
package rules

import (
	"slices"
	"strings"
)

// Separator joins the segments of a dependency path
const Separator = "."

// ParentsOf returns every proper prefix of path, shortest first.
// "a.b.c" yields ["a", "a.b"]; a single segment path has no parents.
func ParentsOf(path string) []string {
	segments := strings.Split(path, Separator)
	parents := make([]string, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		parents = append(parents, strings.Join(segments[:i], Separator))
	}
	return parents
}

// DescendantsOf returns the members of universe that are strict descendants of path.
// Order follows universe.
func DescendantsOf(path string, universe []string) []string {
	prefix := path + Separator
	var descendants []string
	for _, candidate := range universe {
		if len(candidate) > len(prefix) && strings.HasPrefix(candidate, prefix) {
			descendants = append(descendants, candidate)
		}
	}
	return descendants
}

// Root returns the first segment of path
func Root(path string) string {
	root, _, _ := strings.Cut(path, Separator)
	return root
}

// Union returns the distinct values of all lists in first-seen order
func Union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Difference returns the values of list that are not in remove
func Difference(list, remove []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !slices.Contains(remove, v) {
			out = append(out, v)
		}
	}
	return out
}

// ContainsAll reports whether every value of subset appears in set
func ContainsAll(set, subset []string) bool {
	for _, v := range subset {
		if !slices.Contains(set, v) {
			return false
		}
	}
	return true
}
