package sanction

import (
	"strings"

	"github.com/hanlabs/fscdex/internal/amount"
)

// detectRule is one evidence rule of the multi-sanction grammar. The
// rules are OR-ed, each a thresholded count or a containment check, so
// adding qualifying evidence to a flagged text can never clear the flag.
type detectRule struct {
	Name  string
	Match func(text string) bool
}

// multipleSanctionPhrases state outright that several parties are
// sanctioned, e.g. fines assessed "respectively".
var multipleSanctionPhrases = []string{
	"각각 부과", "각각 과태료", "각각 과징금", "각 사에 대하여",
}

// detectRules in evidence-priority order. Order only affects which rule
// short-circuits first; the verdict is the disjunction.
var detectRules = []detectRule{
	{Name: "party_action_table", Match: func(text string) bool {
		rows := partyActionRows(text)
		return len(rows) >= 2
	}},
	{Name: "action_content_bullets", Match: func(text string) bool {
		section, ok := actionContentSection(text)
		if !ok {
			return false
		}
		return len(fineBullets(section)) >= 2
	}},
	{Name: "explicit_phrase", Match: func(text string) bool {
		for _, phrase := range multipleSanctionPhrases {
			if strings.Contains(text, phrase) {
				return true
			}
		}
		return false
	}},
	{Name: "distinct_amounts", Match: func(text string) bool {
		return distinctAmounts(text) >= 3
	}},
	{Name: "loose_entity_fine", Match: func(text string) bool {
		return len(entityFineBullets(text)) >= 2
	}},
}

// DetectMultiple reports whether the document sanctions more than one
// distinct entity. Idempotent and side-effect free.
func DetectMultiple(text string) bool {
	for _, rule := range detectRules {
		if rule.Match(text) {
			return true
		}
	}
	return false
}

// DetectMultipleRule additionally names the first evidence rule that
// fired, for logging.
func DetectMultipleRule(text string) (string, bool) {
	for _, rule := range detectRules {
		if rule.Match(text) {
			return rule.Name, true
		}
	}
	return "", false
}

// distinctAmounts counts distinct standalone fine amounts in the text.
func distinctAmounts(text string) int {
	seen := make(map[int64]bool)
	for _, v := range amount.Candidates(text) {
		seen[v] = true
	}
	return len(seen)
}
