// Package sanction recovers sanction targets from decision text: who was
// sanctioned, how, and for how much. It covers the multi-sanction
// detector, the target extractor and the consolidator that folds several
// targets into one decision-level action.
package sanction

import (
	"regexp"
	"strings"
)

// EntityType classifies a sanctioned party.
type EntityType string

const (
	Institution     EntityType = "institution"
	Individual      EntityType = "individual"
	ExternalAuditor EntityType = "external_auditor"
	UnknownEntity   EntityType = "unknown"
)

// Target is one sanctioned entity with its action and fine. FineAmount
// is in won; zero means a non-monetary sanction.
type Target struct {
	EntityName     string     `json:"entity_name"`
	EntityType     EntityType `json:"entity_type"`
	IndustrySector string     `json:"industry_sector,omitempty"`
	ActionType     string     `json:"action_type"`
	FineAmount     uint64     `json:"fine_amount"`
	SanctionPeriod string     `json:"sanction_period,omitempty"`
	SanctionScope  string     `json:"sanction_scope,omitempty"`
}

// auditorSuffix marks an external audit firm; checked before the
// corporate markers since an audit firm is also a corporation.
const auditorSuffix = "회계법인"

// corporateMarkers identify an institution by name shape.
var corporateMarkers = []string{
	"㈜", "(주)", "（주）", "주식회사",
	"은행", "증권", "보험", "자산운용", "저축은행", "금융투자",
	"캐피탈", "카드", "신탁", "생명", "화재", "조합",
}

// officerKeywords identify a natural person by title.
var officerKeywords = []string{
	"대표이사", "부행장", "행장", "전무", "상무", "이사", "감사위원",
	"임원", "직원", "임직원", "대표", "본부장", "팀장", "회계사",
}

// InferEntityType classifies an entity by name shape.
func InferEntityType(name string) EntityType {
	if strings.Contains(name, auditorSuffix) {
		return ExternalAuditor
	}
	for _, marker := range corporateMarkers {
		if strings.Contains(name, marker) {
			return Institution
		}
	}
	for _, kw := range officerKeywords {
		if strings.Contains(name, kw) {
			return Individual
		}
	}
	return UnknownEntity
}

// fineKeywords are the two classes of monetary administrative penalty.
var fineKeywords = []string{"과태료", "과징금"}

// actionKeywords maps non-monetary action types to their trigger words,
// tried in order.
var actionKeywords = []struct {
	Type     string
	Keywords []string
}{
	{Type: "직무정지", Keywords: []string{"직무정지", "업무정지", "영업정지"}},
	{Type: "인가", Keywords: []string{"인가", "승인", "허가"}},
	{Type: "취소", Keywords: []string{"취소", "철회"}},
	{Type: "업무개선명령", Keywords: []string{"업무개선명령"}},
	{Type: "개선명령", Keywords: []string{"개선명령", "시정명령"}},
	{Type: "경고", Keywords: []string{"경고", "주의"}},
	{Type: "재심", Keywords: []string{"재심", "직권재심"}},
}

// inferActionType picks the action type: a fined target is 과징금 or
// 과태료 depending on which penalty class the text names, otherwise the
// keyword table decides.
func inferActionType(text string, fined bool) string {
	if fined {
		if strings.Contains(text, "과징금") {
			return "과징금"
		}
		return "과태료"
	}
	for _, entry := range actionKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Type
			}
		}
	}
	return ""
}

// industryKeywords maps a sector label to the words that imply it. Order
// matters: 저축은행 must be probed before 은행.
var industryKeywords = []struct {
	Sector   string
	Keywords []string
}{
	{Sector: "저축은행", Keywords: []string{"저축은행"}},
	{Sector: "은행", Keywords: []string{"은행"}},
	{Sector: "보험", Keywords: []string{"보험", "생명보험", "손해보험"}},
	{Sector: "금융투자", Keywords: []string{"자산운용", "투자", "증권", "선물"}},
	{Sector: "회계/감사", Keywords: []string{"회계법인", "감사", "회계사"}},
}

// classifyIndustry assigns a sector from the entity name first, then the
// body text.
func classifyIndustry(name, text string) string {
	for _, entry := range industryKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(name, kw) {
				return entry.Sector
			}
		}
	}
	for _, entry := range industryKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Sector
			}
		}
	}
	return ""
}

var (
	sanctionPeriodPattern = regexp.MustCompile(`(?:직무|업무|영업)\s*정지\s*([0-9]+\s*(?:개월|월|년))`)
	sanctionScopePattern  = regexp.MustCompile(`(?:직무|업무|영업)\s*정지\s*[0-9]*\s*(?:개월|월|년)?\s*\(([^)]+)\)`)
)

// sanctionPeriod pulls the suspension period out of the text, empty when
// the sanction has no duration.
func sanctionPeriod(text string) string {
	if m := sanctionPeriodPattern.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), "")
	}
	return ""
}

// sanctionScope pulls the parenthesized scope annotation of a
// suspension, e.g. 업무정지 3개월(신규 신용공여).
func sanctionScope(text string) string {
	if m := sanctionScopePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
