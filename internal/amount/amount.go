// Package amount normalizes Korean compound currency expressions into
// integer won. Decision documents write penalty amounts in mixed unit
// words (억 = 10^8, 백만 = 10^6, 만 = 10^4), often compounded, e.g.
// "46억 5,760만원". The grammar is an ordered rule table rather than a
// single regex so that unit precedence stays visible and testable.
package amount

import (
	"regexp"
	"strings"
)

// Unit multipliers for the Korean numeral words that appear in decision
// documents.
const (
	unitEok     = 100_000_000 // 억
	unitBaekman = 1_000_000   // 백만
	unitMan     = 10_000      // 만
)

// reductionMarker annotates an amount that records a reduction applied
// during deliberation, not a standalone assessed amount. Candidates
// immediately preceded by it are never selected.
const reductionMarker = "감경("

// digitGroup matches a digit run with optional thousands separators and
// an optional decimal fraction ("5,760", "9.8").
var digitGroup = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)

// trailingDigitGroup anchors a digit group to the end of a prefix, used
// to pick up the figure directly before a unit word.
var trailingDigitGroup = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?)\s*$`)

// Normalize parses a single monetary expression into won. It reports
// ok=false when no digit group is present; absence of an amount is a
// valid outcome for non-monetary sanctions.
func Normalize(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	// 억 component first: the figure before 억 scales by 10^8, and the
	// remainder may still carry a 만 component.
	if idx := strings.Index(s, "억"); idx >= 0 {
		head := trailingDigitGroup.FindStringSubmatch(s[:idx])
		if head == nil {
			return 0, false
		}
		total, ok := scale(head[1], unitEok)
		if !ok {
			return 0, false
		}
		// 백만 before bare 만 in the remainder too: "2억 5백만원" would
		// otherwise find the 만 inside 백만 and drop the component.
		rest := s[idx+len("억"):]
		if j := strings.Index(rest, "백만"); j >= 0 {
			if m := trailingDigitGroup.FindStringSubmatch(rest[:j]); m != nil {
				v, ok := scale(m[1], unitBaekman)
				if !ok {
					return 0, false
				}
				total += v
			}
		} else if j := strings.Index(rest, "만"); j >= 0 {
			if m := trailingDigitGroup.FindStringSubmatch(rest[:j]); m != nil {
				v, ok := scale(m[1], unitMan)
				if !ok {
					return 0, false
				}
				total += v
			}
		}
		return total, true
	}

	// 백만 before bare 만: "백만" contains "만" so order matters.
	if idx := strings.Index(s, "백만"); idx >= 0 {
		head := trailingDigitGroup.FindStringSubmatch(s[:idx])
		if head == nil {
			return 0, false
		}
		return scale(head[1], unitBaekman)
	}

	if idx := strings.Index(s, "만"); idx >= 0 {
		head := trailingDigitGroup.FindStringSubmatch(s[:idx])
		if head == nil {
			return 0, false
		}
		return scale(head[1], unitMan)
	}

	// No unit word: the leading digit group is already in won.
	g := digitGroup.FindString(s)
	if g == "" {
		return 0, false
	}
	return scale(g, 1)
}

// scale converts a digit group (commas and an optional decimal fraction
// allowed) multiplied by a unit. Fractions only survive when the unit
// absorbs them exactly: "9.8백만" is 9,800,000 won, while "1.5원" would
// leave fractional won and is rejected.
func scale(digits string, unit int64) (int64, bool) {
	digits = strings.ReplaceAll(digits, ",", "")
	intPart := digits
	fracPart := ""
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		intPart, fracPart = digits[:dot], digits[dot+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, false
	}

	var total int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, false
		}
		total = total*10 + int64(r-'0')
	}
	total *= unit

	scale := unit
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, false
		}
		if scale%10 != 0 {
			return 0, false
		}
		scale /= 10
		total += int64(r-'0') * scale
	}
	return total, true
}
