package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hanlabs/fscdex/internal/collab"
	"github.com/hanlabs/fscdex/internal/decision"
	"github.com/hanlabs/fscdex/internal/lawcite"
	"github.com/hanlabs/fscdex/internal/lawreg"
	"github.com/hanlabs/fscdex/internal/logging"
	"github.com/hanlabs/fscdex/internal/sanction"
)

// Mode selects the extraction strategy.
type Mode string

const (
	RuleOnly     Mode = "rule_only"
	Hybrid       Mode = "hybrid"
	FallbackOnly Mode = "fallback_only"
)

// State names one position of the extraction state machine.
type State string

const (
	StateStart             State = "start"
	StateRuleBasedAttempt  State = "rule_based_attempt"
	StateValidate          State = "validate"
	StateEnrich            State = "enrich_with_collaborator"
	StateFallbackAttempt   State = "fallback_attempt"
	StateValidateFallback  State = "validate_fallback"
	StateRetryWithFeedback State = "retry_with_feedback"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// Document is one input to extract from.
type Document struct {
	Filename string
	Text     string
}

// Attempt is the transient per-document state of one extraction run.
// It is created at the start of Run and discarded when Run returns.
type Attempt struct {
	ID         uuid.UUID
	Mode       Mode
	Result     *decision.ExtractedDecision
	Validation Validation
	RetryCount int
}

// Options configures a Controller.
type Options struct {
	Mode         Mode
	MaxRetries   int
	Collaborator collab.Collaborator
	Logger       *logging.Logger
}

// Controller drives one document through rule-based extraction,
// validation, enrichment and collaborator fallback. A Controller is
// safe for concurrent Run calls with independent inputs.
type Controller struct {
	mode         Mode
	maxRetries   int
	collaborator collab.Collaborator
	extractor    *sanction.Extractor
	parser       *lawcite.Parser
	logger       *logging.Logger
}

// industryCategories is the classification enum offered to the
// collaborator when backfilling the industry category.
var industryCategories = []string{"은행", "보험", "금융투자", "회계/감사"}

// NewController builds a controller. The collaborator may be nil only
// in rule-only mode.
func NewController(opts Options) (*Controller, error) {
	switch opts.Mode {
	case RuleOnly, Hybrid, FallbackOnly:
	default:
		return nil, fmt.Errorf("unknown pipeline mode %q", opts.Mode)
	}
	if opts.Mode != RuleOnly && opts.Collaborator == nil {
		return nil, fmt.Errorf("%s mode requires a collaborator", opts.Mode)
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0, got %d", opts.MaxRetries)
	}

	registry, err := lawreg.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load law registry: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Controller{
		mode:         opts.Mode,
		maxRetries:   opts.MaxRetries,
		collaborator: opts.Collaborator,
		extractor:    sanction.NewExtractor(),
		parser:       lawcite.NewParser(registry),
		logger:       logger.Named("pipeline"),
	}, nil
}

// Run extracts one document. It returns the finished decision, or a
// typed error: ValidationFailure when rule-only validation fails,
// ExhaustedRetries when every fallback attempt failed. Cancellation is
// honored at every state transition.
func (c *Controller) Run(ctx context.Context, doc Document) (*decision.ExtractedDecision, error) {
	attempt := &Attempt{ID: uuid.New(), Mode: c.mode}
	ctx = logging.WithDocument(ctx, doc.Filename)
	ctx = logging.WithAttemptID(ctx, attempt.ID.String())

	multiple := sanction.DetectMultiple(doc.Text)

	var (
		state       = StateStart
		accumulated []string
		priorErrors []string
		failure     error
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.logger.Debug(ctx, "state transition",
			zap.String("state", string(state)),
			zap.Int("retry_count", attempt.RetryCount))

		switch state {
		case StateStart:
			if c.mode == FallbackOnly {
				state = StateFallbackAttempt
			} else {
				state = StateRuleBasedAttempt
			}

		case StateRuleBasedAttempt:
			attempt.Result = c.ruleBased(doc, multiple)
			state = StateValidate

		case StateValidate:
			attempt.Validation = Validate(attempt.Result, false)
			if attempt.Validation.Valid {
				if c.mode == Hybrid {
					state = StateEnrich
				} else {
					state = StateDone
				}
				continue
			}
			ValidationFailuresTotal.WithLabelValues("rule_based").Inc()
			c.logger.Info(ctx, "rule-based validation failed",
				zap.Strings("errors", attempt.Validation.Errors))
			if c.mode == RuleOnly {
				failure = &ValidationFailure{Errors: attempt.Validation.Errors}
				state = StateFailed
				continue
			}
			accumulated = append(accumulated, attempt.Validation.Errors...)
			priorErrors = attempt.Validation.Errors
			state = StateFallbackAttempt

		case StateEnrich:
			c.enrich(ctx, doc, multiple, attempt.Result)
			state = StateDone

		case StateFallbackAttempt:
			FallbacksTotal.Inc()
			result, err := c.collaborator.Extract(ctx, doc.Text, collab.SchemaHint{
				Filename:    doc.Filename,
				Multiple:    multiple,
				PriorErrors: priorErrors,
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				svcErr := &ExternalServiceFailure{Err: err}
				c.logger.Warn(ctx, "fallback extraction failed", zap.Error(svcErr))
				accumulated = append(accumulated, svcErr.Error())
				state = StateRetryWithFeedback
				continue
			}
			attempt.Result = c.fromStructured(result)
			state = StateValidateFallback

		case StateValidateFallback:
			attempt.Validation = Validate(attempt.Result, true)
			if attempt.Validation.Valid {
				state = StateDone
				continue
			}
			ValidationFailuresTotal.WithLabelValues("fallback").Inc()
			c.logger.Info(ctx, "fallback validation failed",
				zap.Strings("errors", attempt.Validation.Errors))
			accumulated = append(accumulated, attempt.Validation.Errors...)
			priorErrors = attempt.Validation.Errors
			state = StateRetryWithFeedback

		case StateRetryWithFeedback:
			if attempt.RetryCount >= c.maxRetries {
				state = StateFailed
				continue
			}
			attempt.RetryCount++
			RetriesTotal.Inc()
			state = StateFallbackAttempt

		case StateDone:
			AttemptsTotal.WithLabelValues(string(c.mode), "done").Inc()
			c.logger.Info(ctx, "extraction done",
				zap.Int("actions", len(attempt.Result.Actions)),
				zap.Int("citations", len(attempt.Result.Citations)),
				zap.Int("retries", attempt.RetryCount))
			return attempt.Result, nil

		case StateFailed:
			AttemptsTotal.WithLabelValues(string(c.mode), "failed").Inc()
			if failure == nil {
				failure = &ExhaustedRetries{
					Attempts: attempt.RetryCount + 1,
					Errors:   accumulated,
				}
			}
			c.logger.Error(ctx, "extraction failed", zap.Error(failure))
			return nil, failure
		}
	}
}

// titleEntity recovers the sanctioned entity name from a document
// title like "㈜한빛증권에 대한 과징금 부과".
var titleEntity = regexp.MustCompile(`^([^\s에]+)`)

// ruleBased performs the full rule-based extraction of one document.
func (c *Controller) ruleBased(doc Document, multiple bool) *decision.ExtractedDecision {
	meta := decision.ParseMetadata(doc.Text, doc.Filename)

	var hint sanction.NameHint
	if m := titleEntity.FindStringSubmatch(meta.Title); m != nil {
		hint.FromFilename = m[1]
	}

	targets := c.extractor.Extract(doc.Text, multiple, hint)
	action := sanction.Consolidate(targets)

	return &decision.ExtractedDecision{
		Metadata:      meta,
		Actions:       []sanction.Consolidated{action},
		Citations:     c.parser.ParseDocument(doc.Text),
		ViolationText: decision.ViolationSection(doc.Text),
		TargetDetails: decision.TargetDetails(doc.Text),
	}
}

// fromStructured converts a collaborator result into the decision
// model, consolidating its targets the same way the rule-based path
// does.
func (c *Controller) fromStructured(r *collab.StructuredResult) *decision.ExtractedDecision {
	d := &decision.ExtractedDecision{
		Metadata:         r.Metadata,
		Citations:        r.Citations,
		ViolationSummary: r.ViolationSummary,
		EffectiveDate:    r.EffectiveDate,
	}
	if len(r.Targets) > 0 {
		d.Actions = []sanction.Consolidated{sanction.Consolidate(r.Targets)}
	}
	return d
}

// enrich asks the collaborator for non-authoritative enhancements:
// a findings summary, an industry category and target details the
// rule-based pass left empty. Enrichment errors are logged and
// swallowed; the validated rule-based result stands on its own.
func (c *Controller) enrich(ctx context.Context, doc Document, multiple bool, d *decision.ExtractedDecision) {
	if d.ViolationText != "" && d.ViolationSummary == "" {
		summary, err := c.collaborator.Summarize(ctx, d.ViolationText)
		if err != nil {
			c.logger.Warn(ctx, "summary enrichment failed", zap.Error(err))
		} else {
			d.ViolationSummary = summary
		}
	}
	if d.Metadata.Category1 == "" {
		category, err := c.collaborator.Classify(ctx, doc.Text, industryCategories)
		if err != nil {
			c.logger.Warn(ctx, "category enrichment failed", zap.Error(err))
		} else {
			d.Metadata.Category1 = category
		}
	}
	c.enrichTargets(ctx, doc, multiple, d)
}

// enrichTargets backfills target fields the rule-based pass could not
// recover from one collaborator extraction. Rule-based values stay
// authoritative: only placeholder names and empty fields are merged.
func (c *Controller) enrichTargets(ctx context.Context, doc Document, multiple bool, d *decision.ExtractedDecision) {
	if !needsTargetDetail(d.Actions) {
		return
	}
	result, err := c.collaborator.Extract(ctx, doc.Text, collab.SchemaHint{
		Filename: doc.Filename,
		Multiple: multiple,
	})
	if err != nil || result == nil {
		c.logger.Warn(ctx, "target detail enrichment failed", zap.Error(err))
		return
	}

	src := result.Targets
	for i := range d.Actions {
		targets := d.Actions[i].Targets
		for j := range targets {
			if len(src) == 0 {
				break
			}
			mergeTargetDetail(&targets[j], src[0])
			src = src[1:]
		}
		// Re-consolidate so the label follows a replaced placeholder name.
		d.Actions[i] = sanction.Consolidate(targets)
	}
}

// needsTargetDetail reports whether any target is missing details the
// collaborator can supply.
func needsTargetDetail(actions []sanction.Consolidated) bool {
	for _, a := range actions {
		for _, t := range a.Targets {
			if isPlaceholder(t.EntityName) || t.EntityType == sanction.UnknownEntity ||
				strings.TrimSpace(t.IndustrySector) == "" {
				return true
			}
		}
	}
	return false
}

func mergeTargetDetail(dst *sanction.Target, src sanction.Target) {
	if isPlaceholder(dst.EntityName) && !isPlaceholder(src.EntityName) {
		dst.EntityName = src.EntityName
	}
	if dst.EntityType == sanction.UnknownEntity && src.EntityType != "" && src.EntityType != sanction.UnknownEntity {
		dst.EntityType = src.EntityType
	}
	if dst.IndustrySector == "" && src.IndustrySector != "" {
		dst.IndustrySector = src.IndustrySector
	}
	if dst.SanctionPeriod == "" && src.SanctionPeriod != "" {
		dst.SanctionPeriod = src.SanctionPeriod
	}
	if dst.SanctionScope == "" && src.SanctionScope != "" {
		dst.SanctionScope = src.SanctionScope
	}
}
