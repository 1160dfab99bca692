package timetable

import "strings"

// containsFold is a case-insensitive substring check. CJK department names
// are unaffected by folding; Latin keywords match regardless of case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
