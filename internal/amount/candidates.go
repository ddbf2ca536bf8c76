package amount

import (
	"regexp"
	"strings"
)

// candidateRule is one entry in the amount-candidate grammar. Rules are
// tried in declaration order; within a rule, matches are taken left to
// right after the reduction-marker exclusion.
type candidateRule struct {
	Name    string
	Revised bool
	re      *regexp.Regexp
}

// revisionRules match amounts from a side-by-side revision table
// (원안/수정안). When a decision raises or amends the originally proposed
// fine, the revised amount is the one assessed, so these outrank the
// free-text rules.
var revisionRules = []candidateRule{
	{Name: "revised_raised_baekman", Revised: true,
		re: regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?\s*백만\s*원)으로\s*상향`)},
	{Name: "revised_decision", Revised: true,
		re: regexp.MustCompile(`수정(?:의결|안)[^0-9]{0,40}([0-9][0-9,]*(?:\.[0-9]+)?\s*(?:억(?:\s*[0-9][0-9,]*(?:\.[0-9]+)?\s*만)?|백만|만)?\s*원)`)},
	{Name: "revised_raised", Revised: true,
		re: regexp.MustCompile(`상향[^0-9]{0,40}([0-9][0-9,]*(?:\.[0-9]+)?\s*(?:억(?:\s*[0-9][0-9,]*(?:\.[0-9]+)?\s*만)?|백만|만)?\s*원)`)},
}

// freeRules match standalone amounts anywhere in the text, widest unit
// first so a compound "46억 5,760만원" is consumed whole before its 만
// component can match on its own.
var freeRules = []candidateRule{
	{Name: "compound_eok",
		re: regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?\s*억(?:\s*[0-9][0-9,]*(?:\.[0-9]+)?\s*만)?\s*원)`)},
	{Name: "baekman",
		re: regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?\s*백만\s*원)`)},
	{Name: "man",
		re: regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?\s*만\s*원)`)},
	{Name: "won",
		re: regexp.MustCompile(`([0-9][0-9,]*)\s*원`)},
}

// BestCandidate scans free text for the single best assessed amount.
// Revision-table amounts win over originals; candidates annotated with
// the reduction marker are skipped. ok=false when the text carries no
// monetary amount at all.
func BestCandidate(text string) (int64, bool) {
	for _, rule := range revisionRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			if excludedAt(text, loc[0]) {
				continue
			}
			if v, ok := Normalize(text[loc[2]:loc[3]]); ok {
				return v, true
			}
		}
	}
	for _, m := range scanFree(text) {
		return m.value, true
	}
	return 0, false
}

// Candidates returns every standalone amount in document order, with
// reduction-annotated figures excluded. The multi-sanction detector uses
// this to count distinct fines.
func Candidates(text string) []int64 {
	matches := scanFree(text)
	out := make([]int64, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}

type match struct {
	start, end int
	value      int64
}

// scanFree applies the free rules widest-unit first, suppressing any
// later match whose span overlaps one already consumed, then restores
// document order.
func scanFree(text string) []match {
	var matches []match
	for _, rule := range freeRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			if excludedAt(text, loc[0]) || overlaps(matches, loc[0], loc[1]) {
				continue
			}
			if v, ok := Normalize(text[loc[2]:loc[3]]); ok {
				matches = append(matches, match{start: loc[0], end: loc[1], value: v})
			}
		}
	}
	// Insertion sort: match lists are short and mostly ordered.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].start > matches[j].start; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
	return matches
}

func overlaps(matches []match, start, end int) bool {
	for _, m := range matches {
		if start < m.end && m.start < end {
			return true
		}
	}
	return false
}

// excludedAt reports whether the candidate starting at off is annotated
// as a reduction, i.e. immediately preceded by "감경(".
func excludedAt(text string, off int) bool {
	prefix := strings.TrimRight(text[:off], " \t")
	return strings.HasSuffix(prefix, reductionMarker)
}
