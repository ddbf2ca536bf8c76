package lawcite

import "regexp"

// Decision documents label their parts with 가./나./다. markers; the
// legal-basis part is headed 나. 근거법규 (with 법적근거 and 관련법규 as
// variants in older documents).
var (
	basisHeader    = regexp.MustCompile(`(?:[가-하]\.\s*)?(?:근거\s*법규|법적\s*근거|근거\s*조항|관련\s*법규)`)
	nextPartMarker = regexp.MustCompile(`(?m)^\s*[다라마바사아자차카타파하]\.\s`)
)

// BasisSection returns the legal-basis block of a whole document. Absence
// is a normal outcome (ok=false): many decisions carry no separately
// headed basis part, and the caller degrades to an empty citation list.
func BasisSection(text string) (string, bool) {
	loc := basisHeader.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	if end := nextPartMarker.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return rest, true
}

// ParseDocument locates the legal-basis section of a full document text
// and parses it. On a document without a basis section it falls back to
// scanning the whole text for bracketed law references, so a decision
// whose citations sit inline still yields results.
func (p *Parser) ParseDocument(text string) []Citation {
	if block, ok := BasisSection(text); ok {
		if citations := p.Parse(block); len(citations) > 0 {
			return citations
		}
	}
	return p.Parse(text)
}
