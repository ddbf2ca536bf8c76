// Package decision holds the extracted document model: identifying
// metadata, consolidated sanction actions, legal-basis citations and
// the findings text. Everything here is a value type; stages hand each
// other snapshots, never shared mutable state.
package decision

import (
	"github.com/hanlabs/fscdex/internal/lawcite"
	"github.com/hanlabs/fscdex/internal/sanction"
)

// ExtractedDecision is the finished extraction of one document.
// Citations associate to actions by extraction order.
type ExtractedDecision struct {
	Metadata         Metadata                `json:"metadata"`
	Actions          []sanction.Consolidated `json:"actions"`
	Citations        []lawcite.Citation      `json:"citations"`
	ViolationText    string                  `json:"violation_text,omitempty"`
	ViolationSummary string                  `json:"violation_summary,omitempty"`
	EffectiveDate    string                  `json:"effective_date,omitempty"`
	TargetDetails    []TargetDetail          `json:"target_details,omitempty"`
}
