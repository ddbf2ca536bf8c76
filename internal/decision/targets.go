package decision

import (
	"regexp"
	"strings"
)

// TargetDetail is one row of the 조치대상자의 인적사항 section. Officer
// rows additionally split into company, position and personal name when
// the row has enough fields.
type TargetDetail struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Name        string `json:"name,omitempty"`
}

const officerType = "임직원"

var (
	targetInfoHeader = regexp.MustCompile(`1\.\s*조치대상자의\s*인적사항`)
	targetInfoEnd    = regexp.MustCompile(`(?m)^\s*2\.\s`)
)

// targetTypeRules pick the rows of each personal-details class, in
// document-layout order.
var targetTypeRules = []struct {
	Type string
	re   *regexp.Regexp
}{
	{Type: "기관", re: regexp.MustCompile(`기\s*관\s*([^\n]+)`)},
	{Type: officerType, re: regexp.MustCompile(`임직원\s*([^\n]+)`)},
	{Type: "외부감사인", re: regexp.MustCompile(`외부감사인\s*([^\n]+)`)},
}

// TargetDetails parses the personal-details section. Nil when the
// document has no such section.
func TargetDetails(text string) []TargetDetail {
	loc := targetInfoHeader.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	section := text[loc[1]:]
	if end := targetInfoEnd.FindStringIndex(section); end != nil {
		section = section[:end[0]]
	}

	var details []TargetDetail
	for _, rule := range targetTypeRules {
		for _, m := range rule.re.FindAllStringSubmatch(section, -1) {
			desc := strings.TrimSpace(m[1])
			if desc == "" {
				continue
			}
			d := TargetDetail{Type: rule.Type, Description: desc}
			if rule.Type == officerType {
				// e.g. "㈜아이엠증권 前 상무보대우 甲" splits into
				// company, position, name.
				if parts := strings.Fields(desc); len(parts) >= 3 {
					d.Company = parts[0]
					d.Position = strings.Join(parts[1:len(parts)-1], " ")
					d.Name = parts[len(parts)-1]
				}
			}
			details = append(details, d)
		}
	}
	return details
}
