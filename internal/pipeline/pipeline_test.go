package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/hanlabs/fscdex/internal/collab"
	"github.com/hanlabs/fscdex/internal/decision"
	"github.com/hanlabs/fscdex/internal/lawcite"
	"github.com/hanlabs/fscdex/internal/logging"
	"github.com/hanlabs/fscdex/internal/sanction"
)

const testFilename = "금융위 의결서 제2025-123호_㈜한빛증권에 대한 과징금 부과(공개용).pdf"

const testDoc = `금융위원회는 2025년 3월 12일 다음과 같이 의결한다.

1. 조치대상자의 인적사항
기 관 ㈜한빛증권

2. 조치내용
 ○ ㈜한빛증권에 대하여 과징금 46억 5,760만원 부과

3. 조치이유
 가. 지적사항
  ○ 내부통제기준 마련의무 위반
 나. 근거법규
  ｢자본시장과 금융투자업에 관한 법률｣ 제429조 제1항
`

// citationless fails core validation: no legal basis anywhere.
const citationlessDoc = `금융위원회는 2025년 3월 12일 다음과 같이 의결한다.

2. 조치내용
 ○ ㈜한빛증권에 대하여 과징금 3억원 부과
`

// stubCollab is a scripted collaborator.
type stubCollab struct {
	extractResult *collab.StructuredResult
	extractErr    error
	extractCalls  int
	hints         []collab.SchemaHint

	summary    string
	summaryErr error

	category    string
	classifyErr error
}

func (s *stubCollab) Extract(_ context.Context, _ string, hint collab.SchemaHint) (*collab.StructuredResult, error) {
	s.extractCalls++
	s.hints = append(s.hints, hint)
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	return s.extractResult, nil
}

func (s *stubCollab) Summarize(context.Context, string) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubCollab) Classify(context.Context, string, []string) (string, error) {
	return s.category, s.classifyErr
}

func validStructuredResult() *collab.StructuredResult {
	return &collab.StructuredResult{
		Metadata: decision.Metadata{Year: 2025, SequenceID: 123, Title: "과징금 부과"},
		Targets: []sanction.Target{{
			EntityName:     "㈜한빛증권",
			EntityType:     sanction.Institution,
			IndustrySector: "금융투자",
			ActionType:     "과징금",
			FineAmount:     4_657_600_000,
		}},
		Citations: []lawcite.Citation{{
			RawLawName: "자본시장과 금융투자업에 관한 법률",
			ShortName:  "자본시장법",
			Article:    429,
			Paragraph:  1,
		}},
		ViolationSummary: "내부통제기준 마련의무 위반",
		EffectiveDate:    "2025-03-12",
	}
}

func newTestController(t *testing.T, opts Options) *Controller {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.NewTestLogger().Logger
	}
	c, err := NewController(opts)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return c
}

func TestNewController(t *testing.T) {
	if _, err := NewController(Options{Mode: "turbo"}); err == nil {
		t.Error("want error for unknown mode")
	}
	if _, err := NewController(Options{Mode: Hybrid}); err == nil {
		t.Error("want error for hybrid mode without collaborator")
	}
	if _, err := NewController(Options{Mode: RuleOnly, MaxRetries: -1}); err == nil {
		t.Error("want error for negative retries")
	}
	if _, err := NewController(Options{Mode: RuleOnly}); err != nil {
		t.Errorf("rule-only without collaborator should work, got %v", err)
	}
}

func TestRunRuleOnly(t *testing.T) {
	c := newTestController(t, Options{Mode: RuleOnly})

	got, err := c.Run(context.Background(), Document{Filename: testFilename, Text: testDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got.Metadata.Year != 2025 || got.Metadata.SequenceID != 123 {
		t.Errorf("metadata = %+v", got.Metadata)
	}
	if len(got.Actions) != 1 || len(got.Actions[0].Targets) != 1 {
		t.Fatalf("actions = %+v", got.Actions)
	}
	target := got.Actions[0].Targets[0]
	if target.EntityName != "㈜한빛증권" {
		t.Errorf("entity = %q", target.EntityName)
	}
	if target.FineAmount != 4_657_600_000 {
		t.Errorf("fine = %d", target.FineAmount)
	}
	if len(got.Citations) != 1 || got.Citations[0].Article != 429 || got.Citations[0].Paragraph != 1 {
		t.Errorf("citations = %+v", got.Citations)
	}
	if !strings.Contains(got.ViolationText, "내부통제기준") {
		t.Errorf("violation text = %q", got.ViolationText)
	}
	if len(got.TargetDetails) != 1 || got.TargetDetails[0].Type != "기관" {
		t.Errorf("target details = %+v", got.TargetDetails)
	}
}

// Rule-only extraction is a pure function of the document bytes.
func TestRunRuleOnlyIdempotent(t *testing.T) {
	c := newTestController(t, Options{Mode: RuleOnly})
	doc := Document{Filename: testFilename, Text: testDoc}

	first, err := c.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := c.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRunRuleOnlyValidationFailure(t *testing.T) {
	c := newTestController(t, Options{Mode: RuleOnly})

	_, err := c.Run(context.Background(), Document{Filename: "doc.pdf", Text: citationlessDoc})
	var vf *ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("error = %v, want *ValidationFailure", err)
	}
	if len(vf.Errors) == 0 || !strings.Contains(strings.Join(vf.Errors, " "), "법률") {
		t.Errorf("validation errors = %v, want missing-citation error", vf.Errors)
	}
}

func TestRunHybridEnrichment(t *testing.T) {
	stub := &stubCollab{summary: "위반행위 요약", category: "금융투자"}
	c := newTestController(t, Options{Mode: Hybrid, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: testFilename, Text: testDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.ViolationSummary != "위반행위 요약" {
		t.Errorf("summary = %q", got.ViolationSummary)
	}
	if got.Metadata.Category1 != "금융투자" {
		t.Errorf("category = %q", got.Metadata.Category1)
	}
	if stub.extractCalls != 0 {
		t.Errorf("passing rule-based result must not trigger fallback, got %d calls", stub.extractCalls)
	}
}

// Enrichment is non-authoritative: its failures never fail the run.
func TestRunHybridEnrichmentFailureTolerated(t *testing.T) {
	stub := &stubCollab{
		summaryErr:  errors.New("quota exceeded"),
		classifyErr: errors.New("quota exceeded"),
	}
	c := newTestController(t, Options{Mode: Hybrid, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: testFilename, Text: testDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.ViolationSummary != "" || got.Metadata.Category1 != "" {
		t.Errorf("failed enrichment must leave fields empty, got %+v", got.Metadata)
	}
}

// sectorless passes core validation but carries no industry keyword
// anywhere, so the rule-based pass leaves IndustrySector empty.
const sectorlessFilename = "금융위 의결서 제2025-77호_㈜가나다파트너스에 대한 과태료 부과.pdf"

const sectorlessDoc = `금융위원회는 2025년 4월 2일 다음과 같이 의결한다.

2. 조치내용
 ○ ㈜가나다파트너스에 대하여 과태료 3,000만원 부과

3. 조치이유
 나. 근거법규
  ｢여신전문금융업법｣ 제50조
`

func TestRunHybridTargetDetailEnrichment(t *testing.T) {
	detail := &collab.StructuredResult{
		Targets: []sanction.Target{{
			EntityName:     "주식회사 엉뚱한이름",
			EntityType:     sanction.Institution,
			IndustrySector: "여신전문",
			SanctionPeriod: "6개월",
		}},
	}
	stub := &stubCollab{extractResult: detail, category: "은행"}
	c := newTestController(t, Options{Mode: Hybrid, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: sectorlessFilename, Text: sectorlessDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stub.extractCalls != 1 {
		t.Fatalf("extract calls = %d, want 1 detail pass", stub.extractCalls)
	}
	target := got.Actions[0].Targets[0]
	if target.IndustrySector != "여신전문" {
		t.Errorf("industry sector = %q, want backfilled 여신전문", target.IndustrySector)
	}
	if target.SanctionPeriod != "6개월" {
		t.Errorf("sanction period = %q, want backfilled 6개월", target.SanctionPeriod)
	}
	// Rule-based fields stay authoritative.
	if target.EntityName != "㈜가나다파트너스" {
		t.Errorf("entity = %q, collaborator must not overwrite it", target.EntityName)
	}
	if target.FineAmount != 30_000_000 {
		t.Errorf("fine = %d, collaborator must not overwrite it", target.FineAmount)
	}
	if got.Metadata.Category1 != "은행" {
		t.Errorf("category = %q", got.Metadata.Category1)
	}
}

// A detail pass that errors leaves the validated result untouched.
func TestRunHybridTargetDetailEnrichmentFailureTolerated(t *testing.T) {
	stub := &stubCollab{extractErr: errors.New("quota exceeded"), category: "은행"}
	c := newTestController(t, Options{Mode: Hybrid, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: sectorlessFilename, Text: sectorlessDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got.Actions[0].Targets[0].IndustrySector != "" {
		t.Errorf("sector = %q, want empty after failed detail pass", got.Actions[0].Targets[0].IndustrySector)
	}
}

func TestRunHybridFallback(t *testing.T) {
	stub := &stubCollab{extractResult: validStructuredResult()}
	c := newTestController(t, Options{Mode: Hybrid, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: "doc.pdf", Text: citationlessDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stub.extractCalls != 1 {
		t.Fatalf("extract calls = %d, want 1", stub.extractCalls)
	}
	if !strings.Contains(strings.Join(stub.hints[0].PriorErrors, " "), "법률") {
		t.Errorf("fallback hint missing rule validation errors: %+v", stub.hints[0])
	}
	if got.Metadata.SequenceID != 123 || got.EffectiveDate != "2025-03-12" {
		t.Errorf("fallback result not adopted: %+v", got)
	}
}

func TestRunBoundedRetry(t *testing.T) {
	stub := &stubCollab{extractErr: errors.New("service down")}
	c := newTestController(t, Options{Mode: FallbackOnly, MaxRetries: 2, Collaborator: stub})

	_, err := c.Run(context.Background(), Document{Filename: "doc.pdf", Text: citationlessDoc})
	var ex *ExhaustedRetries
	if !errors.As(err, &ex) {
		t.Fatalf("error = %v, want *ExhaustedRetries", err)
	}
	if stub.extractCalls != 3 {
		t.Errorf("extract calls = %d, want exactly maxRetries+1 = 3", stub.extractCalls)
	}
	if ex.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", ex.Attempts)
	}
	if !strings.Contains(ex.Error(), "service down") {
		t.Errorf("accumulated errors missing cause: %v", ex)
	}
}

func TestRunRetryWithCorrectiveFeedback(t *testing.T) {
	incomplete := validStructuredResult()
	incomplete.EffectiveDate = ""
	stub := &stubCollab{extractResult: incomplete}
	c := newTestController(t, Options{Mode: FallbackOnly, MaxRetries: 1, Collaborator: stub})

	_, err := c.Run(context.Background(), Document{Filename: "doc.pdf", Text: citationlessDoc})
	var ex *ExhaustedRetries
	if !errors.As(err, &ex) {
		t.Fatalf("error = %v, want *ExhaustedRetries", err)
	}
	if stub.extractCalls != 2 {
		t.Fatalf("extract calls = %d, want 2", stub.extractCalls)
	}
	// The retry carries the prior attempt's validation errors.
	if !strings.Contains(strings.Join(stub.hints[1].PriorErrors, " "), "시행일자") {
		t.Errorf("retry hint = %+v, want effective-date error", stub.hints[1])
	}
}

func TestRunFallbackOnlySuccess(t *testing.T) {
	stub := &stubCollab{extractResult: validStructuredResult()}
	c := newTestController(t, Options{Mode: FallbackOnly, Collaborator: stub})

	got, err := c.Run(context.Background(), Document{Filename: "doc.pdf", Text: citationlessDoc})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got.Actions) != 1 || got.Actions[0].Label != "㈜한빛증권" {
		t.Errorf("actions = %+v", got.Actions)
	}
	if stub.hints[0].PriorErrors != nil {
		t.Errorf("first attempt must carry no prior errors, got %+v", stub.hints[0])
	}
}

func TestRunCancellation(t *testing.T) {
	c := newTestController(t, Options{Mode: RuleOnly})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Run(ctx, Document{Filename: "doc.pdf", Text: testDoc}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestValidate(t *testing.T) {
	valid := &decision.ExtractedDecision{
		Metadata: decision.Metadata{Year: 2025, SequenceID: 123},
		Actions: []sanction.Consolidated{{
			Label: "㈜한빛증권",
			Targets: []sanction.Target{{
				EntityName:     "㈜한빛증권",
				ActionType:     "과징금",
				IndustrySector: "금융투자",
			}},
		}},
		Citations:     []lawcite.Citation{{RawLawName: "은행법", Article: 34}},
		EffectiveDate: "2025-03-12",
	}

	if v := Validate(valid, true); !v.Valid {
		t.Errorf("want valid, got errors %v", v.Errors)
	}

	t.Run("placeholder entity", func(t *testing.T) {
		d := *valid
		d.Actions = []sanction.Consolidated{{Targets: []sanction.Target{{
			EntityName: "미상", ActionType: "과태료",
		}}}}
		if v := Validate(&d, false); v.Valid {
			t.Error("placeholder entity must fail")
		}
	})

	t.Run("placeholder citation", func(t *testing.T) {
		d := *valid
		d.Citations = []lawcite.Citation{{RawLawName: "미상", Article: 0}}
		v := Validate(&d, false)
		if v.Valid || !strings.Contains(strings.Join(v.Errors, " "), "법률") {
			t.Errorf("placeholder citation must fail, got %v", v)
		}
	})

	t.Run("strict requires effective date", func(t *testing.T) {
		d := *valid
		d.EffectiveDate = ""
		if v := Validate(&d, false); !v.Valid {
			t.Errorf("core validation must not require effective date, got %v", v.Errors)
		}
		if v := Validate(&d, true); v.Valid {
			t.Error("strict validation must require effective date")
		}
	})

	t.Run("strict requires sequence id", func(t *testing.T) {
		d := *valid
		d.Metadata.SequenceID = 0
		if v := Validate(&d, true); v.Valid {
			t.Error("strict validation must require a sequence id")
		}
	})
}
