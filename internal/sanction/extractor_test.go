package sanction

import "testing"

func TestExtractMultipleFromActionContent(t *testing.T) {
	e := NewExtractor()
	targets, strategy := e.ExtractWithStrategy(multiBulletDoc, true, NameHint{})
	if strategy != "action_content_bullets" {
		t.Fatalf("strategy = %q, want action_content_bullets", strategy)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}

	first := targets[0]
	if first.EntityName != "㈜한빛증권" {
		t.Errorf("first entity = %q, want ㈜한빛증권", first.EntityName)
	}
	if first.EntityType != Institution {
		t.Errorf("first type = %v, want Institution", first.EntityType)
	}
	if first.ActionType != "과징금" {
		t.Errorf("first action = %q, want 과징금", first.ActionType)
	}
	if first.FineAmount != 4_657_600_000 {
		t.Errorf("first fine = %d, want 4657600000", first.FineAmount)
	}
	if first.IndustrySector != "금융투자" {
		t.Errorf("first sector = %q, want 금융투자", first.IndustrySector)
	}

	second := targets[1]
	if second.EntityName != "대표이사 박영수" {
		t.Errorf("second entity = %q, want 대표이사 박영수", second.EntityName)
	}
	if second.EntityType != Individual {
		t.Errorf("second type = %v, want Individual", second.EntityType)
	}
	if second.FineAmount != 9_800_000 {
		t.Errorf("second fine = %d, want 9800000", second.FineAmount)
	}
}

func TestExtractMultipleFromPartyTable(t *testing.T) {
	e := NewExtractor()
	targets, strategy := e.ExtractWithStrategy(partyTableDoc, true, NameHint{})
	if strategy != "party_action_table" {
		t.Fatalf("strategy = %q, want party_action_table", strategy)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].EntityName != "㈜대한은행" || targets[0].FineAmount != 120_000_000 {
		t.Errorf("first row = %q / %d", targets[0].EntityName, targets[0].FineAmount)
	}
	if targets[1].EntityName != "김철수 대표이사" || targets[1].FineAmount != 50_000_000 {
		t.Errorf("second row = %q / %d", targets[1].EntityName, targets[1].FineAmount)
	}
}

// A document can trip the detector without containing any structured
// multi-target evidence; extraction degrades to a single target instead
// of failing.
func TestExtractDegradesToSingle(t *testing.T) {
	text := "임원들에 대하여 각각 부과된 조치사항을 직권재심한다."
	if !DetectMultiple(text) {
		t.Fatal("expected the explicit phrase to trip detection")
	}
	e := NewExtractor()
	targets, strategy := e.ExtractWithStrategy(text, true, NameHint{FromTitle: "한국저축은행"})
	if strategy != "single" {
		t.Fatalf("strategy = %q, want single", strategy)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].EntityName != "한국저축은행" {
		t.Errorf("entity = %q, want 한국저축은행", targets[0].EntityName)
	}
	if targets[0].IndustrySector != "저축은행" {
		t.Errorf("sector = %q, want 저축은행", targets[0].IndustrySector)
	}
}

func TestExtractSingle(t *testing.T) {
	e := NewExtractor()

	t.Run("filename hint wins over title", func(t *testing.T) {
		targets := e.Extract("과태료 3억원 부과", false,
			NameHint{FromFilename: "㈜가나은행", FromTitle: "다른이름"})
		if targets[0].EntityName != "㈜가나은행" {
			t.Errorf("entity = %q, want ㈜가나은행", targets[0].EntityName)
		}
		if targets[0].FineAmount != 300_000_000 {
			t.Errorf("fine = %d, want 300000000", targets[0].FineAmount)
		}
	})

	t.Run("name recovered from body", func(t *testing.T) {
		targets := e.Extract("신한캐피탈에 대한 과태료 3억원 부과", false, NameHint{})
		if targets[0].EntityName != "신한캐피탈" {
			t.Errorf("entity = %q, want 신한캐피탈", targets[0].EntityName)
		}
		if targets[0].EntityType != Institution {
			t.Errorf("type = %v, want Institution", targets[0].EntityType)
		}
	})

	t.Run("placeholder when nothing recoverable", func(t *testing.T) {
		targets := e.Extract("조치 없음", false, NameHint{})
		if targets[0].EntityName != fallbackEntityName {
			t.Errorf("entity = %q, want %q", targets[0].EntityName, fallbackEntityName)
		}
	})

	t.Run("suspension period and scope", func(t *testing.T) {
		targets := e.Extract("한빛저축은행에 대한 업무정지 3개월(신규 신용공여) 처분", false,
			NameHint{FromTitle: "한빛저축은행"})
		got := targets[0]
		if got.ActionType != "직무정지" {
			t.Errorf("action = %q, want 직무정지", got.ActionType)
		}
		if got.SanctionPeriod != "3개월" {
			t.Errorf("period = %q, want 3개월", got.SanctionPeriod)
		}
		if got.SanctionScope != "신규 신용공여" {
			t.Errorf("scope = %q, want 신규 신용공여", got.SanctionScope)
		}
	})
}

func TestEntityFromLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"㈜한빛증권에 대하여 과징금 46억 5,760만원 부과", "㈜한빛증권"},
		{"대표이사 박영수에게 과태료 9.8백만원 부과", "대표이사 박영수"},
		{"㈜대한은행 과태료 120백만원", "㈜대한은행"},
		{"과태료 3억원", ""},
	}
	for _, tt := range tests {
		if got := entityFromLine(tt.in); got != tt.want {
			t.Errorf("entityFromLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConsolidate(t *testing.T) {
	t.Run("five targets mixed units", func(t *testing.T) {
		targets := []Target{
			{EntityName: "㈜한빛증권", EntityType: Institution, FineAmount: 4_657_600_000},
			{EntityName: "대표이사 박영수", EntityType: Individual, FineAmount: 9_800_000},
			{EntityName: "김철수 대표이사", EntityType: Individual, FineAmount: 50_000_000},
			{EntityName: "㈜대한은행", EntityType: Institution, FineAmount: 120_000_000},
			{EntityName: "감사 이영희", EntityType: Individual},
		}
		got := Consolidate(targets)
		if got.Label != "㈜한빛증권 외 4인" {
			t.Errorf("label = %q, want ㈜한빛증권 외 4인", got.Label)
		}
		if got.TotalFine != 4_837_400_000 {
			t.Errorf("total = %d, want 4837400000", got.TotalFine)
		}
		if got.EntityType != Institution {
			t.Errorf("entity type = %v, want Institution", got.EntityType)
		}
		if len(got.Targets) != 5 {
			t.Errorf("kept %d targets, want 5", len(got.Targets))
		}
	})

	t.Run("single target keeps its name", func(t *testing.T) {
		got := Consolidate([]Target{{EntityName: "㈜대한은행", FineAmount: 120_000_000}})
		if got.Label != "㈜대한은행" {
			t.Errorf("label = %q, want ㈜대한은행", got.Label)
		}
		if got.TotalFine != 120_000_000 {
			t.Errorf("total = %d, want 120000000", got.TotalFine)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got := Consolidate(nil)
		if got.Label != "" || got.TotalFine != 0 {
			t.Errorf("got %+v, want zero value", got)
		}
	})
}
