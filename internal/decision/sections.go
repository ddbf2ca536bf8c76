package decision

import (
	"regexp"
	"strings"
)

// violationHeader opens the 가. 지적사항 part of the statement of
// reasons. The closing marker set deliberately omits 다: Korean
// sentences end in 다. and a wrapped line can start with one.
var (
	violationHeader = regexp.MustCompile(`가\.\s*지적사항`)
	violationEnd    = regexp.MustCompile(`(?m)^\s*[나라마바사아자차카타파하]\.\s`)
)

// ViolationSection returns the full text of the findings section, empty
// when the document has none.
func ViolationSection(text string) string {
	loc := violationHeader.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if end := violationEnd.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return strings.TrimSpace(rest)
}
