package collab

import "strings"

// Mode selects the prompt family.
type Mode string

const (
	ModeExtract   Mode = "extract"
	ModeSummarize Mode = "summarize"
	ModeClassify  Mode = "classify"
)

// PromptSpec is the full configuration of one prompt. Rendering is a
// pure function of the spec and the document text; there is no ambient
// template state.
type PromptSpec struct {
	Mode        Mode
	QueryType   string
	Filename    string
	Categories  []string
	PriorErrors []string
}

const extractInstruction = `다음 금융위원회 의결서에서 구조화된 JSON 데이터를 추출하세요.
응답은 metadata(year, sequence_id, title), targets(entity_name, entity_type,
action_type, fine_amount), citations(raw_law_name, article, paragraph, item) 필드를
가진 JSON 객체 하나여야 합니다.`

const summarizeInstruction = `다음 지적사항 전문을 3문장 이내로 요약하세요. 요약문만 출력하세요.`

const classifyInstruction = `다음 의결서를 아래 분류 중 하나로 분류하세요. 분류명만 출력하세요.`

// correctiveInstructions map a validation-error marker to the focused
// instruction appended on retry.
var correctiveInstructions = []struct {
	Marker      string
	Instruction string
}{
	{Marker: "법률", Instruction: "문서에서 언급된 모든 법률명과 조항을 빠짐없이 추출하세요."},
	{Marker: "업권", Instruction: "조치대상의 업권(은행, 보험, 금융투자, 회계/감사)을 명확히 식별하세요."},
	{Marker: "의안번호", Instruction: "의안번호에서 숫자만 추출하세요 (예: 제476호 → 476)."},
	{Marker: "시행일자", Instruction: "조치의 시행일자 또는 효력 발생일을 찾아 추출하세요."},
}

// Render builds the prompt for the given document text. Identical spec
// and text always produce an identical prompt.
func (p PromptSpec) Render(text string) string {
	var b strings.Builder
	switch p.Mode {
	case ModeSummarize:
		b.WriteString(summarizeInstruction)
	case ModeClassify:
		b.WriteString(classifyInstruction)
		b.WriteString("\n\n분류: ")
		b.WriteString(strings.Join(p.Categories, ", "))
	default:
		b.WriteString(extractInstruction)
	}

	if focus := correctiveFocus(p.PriorErrors); len(focus) > 0 {
		b.WriteString("\n\n집중 추출 항목:\n")
		for _, line := range focus {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if p.Filename != "" {
		b.WriteString("\n파일명: ")
		b.WriteString(p.Filename)
	}
	if p.QueryType != "" {
		b.WriteString("\n문서유형: ")
		b.WriteString(p.QueryType)
	}

	b.WriteString("\n\n문서 내용:\n")
	b.WriteString(text)
	return b.String()
}

// correctiveFocus resolves prior validation errors to focused
// instructions, each at most once, in table order.
func correctiveFocus(priorErrors []string) []string {
	if len(priorErrors) == 0 {
		return nil
	}
	joined := strings.Join(priorErrors, " ")
	var out []string
	for _, entry := range correctiveInstructions {
		if strings.Contains(joined, entry.Marker) {
			out = append(out, entry.Instruction)
		}
	}
	return out
}
