package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every run of other characters into a
// single dash, so "Box Breathing" and "box_breathing" both become
// "box-breathing". Blank input yields "".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
