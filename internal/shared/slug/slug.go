package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName lowercases s and collapses everything that is not [a-z0-9] into
// single dashes.
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "product"
	}
	return s
}

// Path is the storefront URL path for a catalog entry named s ("/orbit-terrarium/").
func Path(s string) string {
	return "/" + FromName(s) + "/"
}
