package sanction

import (
	"regexp"
	"strconv"

	"github.com/hanlabs/fscdex/internal/amount"
)

// NameHint carries entity names recovered outside the body text. A name
// from the document's filename or title is more reliable than one
// guessed from prose, so it wins during single-target extraction.
type NameHint struct {
	FromFilename string
	FromTitle    string
}

func (h NameHint) best() string {
	if h.FromFilename != "" {
		return h.FromFilename
	}
	return h.FromTitle
}

// strategy is one multi-target extraction approach. Strategies run in
// declaration order; the first to produce two or more targets wins.
type strategy struct {
	Name    string
	Extract func(text string) []Target
}

// Extractor extracts sanction targets from decision text.
type Extractor struct {
	strategies []strategy
}

// NewExtractor builds an extractor with the default strategy order:
// structured action-content bullets, then the party/action table, then
// loosely matched entity+fine bullets anywhere in the text.
func NewExtractor() *Extractor {
	e := &Extractor{}
	e.strategies = []strategy{
		{Name: "action_content_bullets", Extract: e.fromActionContent},
		{Name: "party_action_table", Extract: e.fromPartyActionTable},
		{Name: "loose_entity_fine", Extract: e.fromLooseBullets},
	}
	return e
}

// Extract returns the sanction targets of a document. With
// detectedMultiple set it tries each multi-target strategy in priority
// order; when none yields at least two targets — the detector
// occasionally fires on single-target documents — it degrades to
// single-target extraction instead of failing.
func (e *Extractor) Extract(text string, detectedMultiple bool, hint NameHint) []Target {
	if detectedMultiple {
		for _, s := range e.strategies {
			if targets := s.Extract(text); len(targets) >= 2 {
				return targets
			}
		}
	}
	return []Target{e.extractSingle(text, hint)}
}

// ExtractWithStrategy also reports which strategy produced the targets,
// "single" for the degraded path.
func (e *Extractor) ExtractWithStrategy(text string, detectedMultiple bool, hint NameHint) ([]Target, string) {
	if detectedMultiple {
		for _, s := range e.strategies {
			if targets := s.Extract(text); len(targets) >= 2 {
				return targets, s.Name
			}
		}
	}
	return []Target{e.extractSingle(text, hint)}, "single"
}

// entityForPattern recovers a dominant entity name from body prose, the
// original "X에 대한 / X의" construction.
var entityForPattern = regexp.MustCompile(`([^\s에]+)(?:에\s*대한|의\s*)`)

// fallbackEntityName labels a target whose name could not be recovered
// at all; validation upstream treats it as present but the enrichment
// step is expected to replace it.
const fallbackEntityName = "조치대상자"

func (e *Extractor) extractSingle(text string, hint NameHint) Target {
	name := hint.best()
	if name == "" {
		if m := entityForPattern.FindStringSubmatch(text); m != nil {
			name = m[1]
		} else {
			name = fallbackEntityName
		}
	}

	fine, hasFine := amount.BestCandidate(text)
	t := Target{
		EntityName:     name,
		EntityType:     InferEntityType(name),
		IndustrySector: classifyIndustry(name, text),
		ActionType:     inferActionType(text, hasFine),
		SanctionPeriod: sanctionPeriod(text),
		SanctionScope:  sanctionScope(text),
	}
	if hasFine {
		t.FineAmount = uint64(fine)
	}
	return t
}

func (e *Extractor) fromActionContent(text string) []Target {
	section, ok := actionContentSection(text)
	if !ok {
		return nil
	}
	var targets []Target
	for _, line := range fineBullets(section) {
		if t, ok := targetFromLine(line); ok {
			targets = append(targets, t)
		}
	}
	return dedupeTargets(targets)
}

func (e *Extractor) fromPartyActionTable(text string) []Target {
	var targets []Target
	for _, row := range partyActionRows(text) {
		if t, ok := targetFromLine(row.Line); ok {
			targets = append(targets, t)
		}
	}
	return dedupeTargets(targets)
}

func (e *Extractor) fromLooseBullets(text string) []Target {
	var targets []Target
	for _, row := range entityFineBullets(text) {
		if t, ok := targetFromLine(row.Line); ok {
			targets = append(targets, t)
		}
	}
	return dedupeTargets(targets)
}

// targetFromLine builds a target from one entity+fine line.
func targetFromLine(line string) (Target, bool) {
	entity := entityFromLine(line)
	if entity == "" {
		return Target{}, false
	}
	fine, hasFine := amount.BestCandidate(line)
	t := Target{
		EntityName:     entity,
		EntityType:     InferEntityType(entity),
		IndustrySector: classifyIndustry(entity, line),
		ActionType:     inferActionType(line, hasFine),
		SanctionPeriod: sanctionPeriod(line),
		SanctionScope:  sanctionScope(line),
	}
	if hasFine {
		t.FineAmount = uint64(fine)
	}
	return t, true
}

// dedupeTargets folds rows that repeat the same entity with the same
// fine; a wrapped table row otherwise double-counts.
func dedupeTargets(targets []Target) []Target {
	seen := make(map[string]bool, len(targets))
	out := targets[:0]
	for _, t := range targets {
		key := t.EntityName + "\x00" + strconv.FormatUint(t.FineAmount, 10)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
