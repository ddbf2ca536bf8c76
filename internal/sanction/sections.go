package sanction

import (
	"regexp"
	"strings"

	"github.com/hanlabs/fscdex/internal/amount"
)

// Bullet glyphs as they survive PDF text extraction.
var bulletGlyphs = []string{"-", "–", "•", "○", "◦", "□", "‣", "ㅇ", "·"}

// isBulletLine strips a leading bullet glyph and reports whether the
// line was bulleted.
func isBulletLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, glyph := range bulletGlyphs {
		if rest, ok := strings.CutPrefix(trimmed, glyph); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

var (
	actionContentHeader = regexp.MustCompile(`(?m)^\s*(?:\d+\.|[가-하]\.)?\s*조치\s*내용`)
	sectionBoundary     = regexp.MustCompile(`(?m)^\s*(?:\d+\.|[가-하]\.)\s`)
)

// actionContentSection returns the 조치내용 part of the document.
func actionContentSection(text string) (string, bool) {
	loc := actionContentHeader.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if end := sectionBoundary.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return rest, true
}

// fineBullets returns the bulleted lines of a section that carry a fine
// keyword.
func fineBullets(section string) []string {
	var out []string
	for _, line := range strings.Split(section, "\n") {
		content, ok := isBulletLine(line)
		if !ok {
			continue
		}
		for _, kw := range fineKeywords {
			if strings.Contains(content, kw) {
				out = append(out, content)
				break
			}
		}
	}
	return out
}

// tableRow is one row of a sanctioned-party/sanction-action table.
type tableRow struct {
	Entity string
	Line   string
}

// partyActionHeader matches a table header line that names both the
// sanctioned party and the sanction action.
func partyActionHeader(line string) bool {
	if !strings.Contains(line, "조치대상") && !strings.Contains(line, "대상자") {
		return false
	}
	return strings.Contains(line, "조치내용") ||
		strings.Contains(line, "조치내역") ||
		strings.Contains(line, "조치사항")
}

// partyActionRows locates a sanctioned-party/sanction-action table and
// returns its entity/amount rows. A row must carry both a leading entity
// and an amount to count.
func partyActionRows(text string) []tableRow {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if partyActionHeader(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var rows []tableRow
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if sectionBoundary.MatchString("\n" + line) {
			break
		}
		if _, ok := amount.BestCandidate(trimmed); !ok {
			continue
		}
		entity := entityFromLine(trimmed)
		if entity == "" {
			continue
		}
		rows = append(rows, tableRow{Entity: entity, Line: trimmed})
	}
	return rows
}

// entityFineBullets returns bulleted lines anywhere in the text that
// pair an entity with a fine.
func entityFineBullets(text string) []tableRow {
	var rows []tableRow
	for _, line := range strings.Split(text, "\n") {
		content, ok := isBulletLine(line)
		if !ok {
			continue
		}
		hasFine := false
		for _, kw := range fineKeywords {
			if strings.Contains(content, kw) {
				hasFine = true
				break
			}
		}
		if !hasFine {
			continue
		}
		if _, ok := amount.BestCandidate(content); !ok {
			continue
		}
		entity := entityFromLine(content)
		if entity == "" {
			continue
		}
		rows = append(rows, tableRow{Entity: entity, Line: content})
	}
	return rows
}

// trailingParticles are clipped off an entity phrase.
var trailingParticles = []string{"에 대하여", "에 대한", "에게", "에", "은", "는", ":", "："}

// entityFromLine recovers the entity phrase of a row or bullet: the text
// before the first fine keyword, with connective particles clipped.
func entityFromLine(line string) string {
	cut := len(line)
	for _, kw := range fineKeywords {
		if idx := strings.Index(line, kw); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	entity := strings.TrimSpace(line[:cut])
	for _, particle := range trailingParticles {
		if trimmed, ok := strings.CutSuffix(entity, particle); ok {
			entity = strings.TrimSpace(trimmed)
			break
		}
	}
	// A row may column-separate the entity from descriptive text; keep
	// the first column-ish token when the remainder carries digits.
	if fields := strings.Fields(entity); len(fields) > 0 {
		last := fields[len(fields)-1]
		if strings.IndexFunc(last, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0 {
			entity = strings.Join(fields[:len(fields)-1], " ")
		}
	}
	return strings.TrimSpace(entity)
}
