package pipeline

import (
	"strings"

	"github.com/hanlabs/fscdex/internal/decision"
	"github.com/hanlabs/fscdex/internal/sanction"
)

// Validation is the outcome of checking one extraction result.
type Validation struct {
	Valid  bool
	Errors []string
}

// placeholderNames are entity or law names that count as absent.
var placeholderNames = []string{"미상", "unknown", "조치대상자"}

func isPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, p := range placeholderNames {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// Validate applies the core acceptance checks: a named sanction target,
// a named action type, and at least one citation with a real article.
// With strict set — used on collaborator results, which promise the
// full schema — it additionally requires the sequence id, industry
// classification and effective date that corrective retries ask for.
func Validate(d *decision.ExtractedDecision, strict bool) Validation {
	var errs []string

	target, ok := primaryTarget(d)
	if !ok || isPlaceholder(target.EntityName) {
		errs = append(errs, "조치대상 명칭 누락")
	}
	if !ok || strings.TrimSpace(target.ActionType) == "" {
		errs = append(errs, "조치유형 누락")
	}

	cited := false
	for _, c := range d.Citations {
		if c.Article > 0 && !isPlaceholder(c.RawLawName) {
			cited = true
			break
		}
	}
	if !cited {
		errs = append(errs, "법률 인용 누락")
	}

	if strict {
		if d.Metadata.SequenceID <= 0 {
			errs = append(errs, "의안번호 누락 또는 형식 오류")
		}
		if ok && strings.TrimSpace(target.IndustrySector) == "" {
			errs = append(errs, "업권 분류 누락")
		}
		if strings.TrimSpace(d.EffectiveDate) == "" {
			errs = append(errs, "시행일자 누락")
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func primaryTarget(d *decision.ExtractedDecision) (sanction.Target, bool) {
	if len(d.Actions) == 0 || len(d.Actions[0].Targets) == 0 {
		return sanction.Target{}, false
	}
	return d.Actions[0].Targets[0], true
}
