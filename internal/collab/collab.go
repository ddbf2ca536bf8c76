// Package collab talks to the external AI collaborator. The pipeline
// treats every call here as fallible and potentially slow; nothing in
// this package assumes in-process execution.
package collab

import (
	"context"

	"github.com/hanlabs/fscdex/internal/decision"
	"github.com/hanlabs/fscdex/internal/lawcite"
	"github.com/hanlabs/fscdex/internal/sanction"
)

// SchemaHint steers an extraction call: document provenance, the
// multi-sanction verdict, and — on corrective retries — the validation
// errors of the prior attempt.
type SchemaHint struct {
	Filename    string
	Multiple    bool
	PriorErrors []string
}

// StructuredResult mirrors the decision schema as the collaborator
// returns it.
type StructuredResult struct {
	Metadata         decision.Metadata  `json:"metadata"`
	Targets          []sanction.Target  `json:"targets"`
	Citations        []lawcite.Citation `json:"citations"`
	ViolationSummary string             `json:"violation_summary,omitempty"`
	EffectiveDate    string             `json:"effective_date,omitempty"`
}

// Collaborator is the external AI service surface the pipeline consumes.
type Collaborator interface {
	// Extract asks for a full structured extraction of the document.
	Extract(ctx context.Context, text string, hint SchemaHint) (*StructuredResult, error)
	// Summarize condenses the findings text.
	Summarize(ctx context.Context, text string) (string, error)
	// Classify picks one of the given categories for the document.
	Classify(ctx context.Context, text string, categories []string) (string, error)
}
