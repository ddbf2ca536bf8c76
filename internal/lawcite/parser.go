package lawcite

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalizer resolves a raw law name to its canonical short name. The
// lawreg registry satisfies this.
type Normalizer interface {
	Normalize(raw string) string
}

// fragmentKind tags what a sub-clause fragment carries.
type fragmentKind int

const (
	fragFull      fragmentKind = iota // 제N조…: establishes a new base
	fragParagraph                     // 제M항…: inherits the base article
	fragItem                          // 제K호…: inherits article and paragraph
)

// fragmentRule pairs a kind with its pattern. Rules are tried in order;
// the first match classifies the fragment. fragFull must come first
// since a full reference also contains 항/호 forms.
type fragmentRule struct {
	Kind fragmentKind
	re   *regexp.Regexp
}

var fragmentRules = []fragmentRule{
	{Kind: fragFull, re: regexp.MustCompile(`제(\d+)조(?:의\s*(\d+))?(?:\s*제(\d+)항)?(?:\s*제(\d+)호)?(?:의\s*(\d+))?`)},
	{Kind: fragParagraph, re: regexp.MustCompile(`제(\d+)항(?:\s*제(\d+)호)?(?:의\s*(\d+))?`)},
	{Kind: fragItem, re: regexp.MustCompile(`제(\d+)호(?:의\s*(\d+))?`)},
}

// lawNameMarker matches a law name inside paired corner brackets; both
// the ｢…｣ and 「…」 variants occur in extracted text.
var lawNameMarker = regexp.MustCompile(`[｢「]([^｣」]+)[｣」]`)

// DefaultParagraphPolicy names the fallback applied when an item-only
// abbreviation has no governing paragraph in scope. The source corpus is
// genuinely ambiguous here; paragraph 1 matches how the documents are
// usually read, but the policy is overridable per parser.
const DefaultParagraphPolicy = 1

// Parser turns a legal-basis block into ordered citations.
type Parser struct {
	normalizer Normalizer

	// DefaultParagraph is assigned to an item-only fragment whose base
	// clause carries no paragraph.
	DefaultParagraph int
}

// NewParser builds a parser over the given name normalizer. A nil
// normalizer leaves raw names unresolved.
func NewParser(n Normalizer) *Parser {
	return &Parser{
		normalizer: n,
		DefaultParagraph: DefaultParagraphPolicy,
	}
}

// Parse extracts every citation from a legal-basis block, in document
// order. A repeated law name produces distinct citations per occurrence;
// deduplication is the consumer's concern. A block without law markers
// yields nil, never an error: a missing basis section is valid input.
func (p *Parser) Parse(block string) []Citation {
	markers := lawNameMarker.FindAllStringSubmatchIndex(block, -1)
	if len(markers) == 0 {
		return nil
	}

	var citations []Citation
	for i, m := range markers {
		rawName := strings.TrimSpace(block[m[2]:m[3]])
		articleText := block[m[1]:segmentEnd(block, markers, i)]
		citations = append(citations, p.parseSegment(rawName, articleText)...)
	}
	return citations
}

// segmentEnd returns where segment i's article text stops: the next law
// marker, or the end of the block.
func segmentEnd(block string, markers [][]int, i int) int {
	if i+1 < len(markers) {
		return markers[i+1][0]
	}
	return len(block)
}

// base is the provision scope a full fragment establishes for the
// abbreviations that follow it.
type base struct {
	article   int
	paragraph int
}

// parseSegment expands one law segment's article text.
func (p *Parser) parseSegment(rawName, articleText string) []Citation {
	short := rawName
	if p.normalizer != nil {
		if n := p.normalizer.Normalize(rawName); n != "" {
			short = n
		}
	}

	var citations []Citation
	var scope base
	haveScope := false

	for _, clause := range splitClauses(articleText) {
		for _, frag := range splitConnective(clause) {
			kind, groups, ok := classify(frag)
			if !ok {
				continue
			}

			c := Citation{RawLawName: rawName, ShortName: short}
			switch kind {
			case fragFull:
				c.Article = groups[0]
				c.Paragraph = groups[2]
				c.Item = groups[3]
				c.SubItem = groups[4]
				if c.SubItem == 0 {
					// 제N조의S form: the sub-article number rides
					// in the second group.
					c.SubItem = groups[1]
				}
				scope = base{article: c.Article, paragraph: c.Paragraph}
				haveScope = true
			case fragParagraph:
				if !haveScope {
					continue
				}
				c.Article = scope.article
				c.Paragraph = groups[0]
				c.Item = groups[1]
				c.SubItem = groups[2]
				scope.paragraph = c.Paragraph
			case fragItem:
				if !haveScope {
					continue
				}
				c.Article = scope.article
				c.Paragraph = scope.paragraph
				if c.Paragraph == 0 {
					c.Paragraph = p.DefaultParagraph
				}
				c.Item = groups[0]
				c.SubItem = groups[1]
			}
			citations = append(citations, c)
		}
	}
	return citations
}

// splitClauses breaks article text into comma-delimited major clauses.
func splitClauses(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	out := parts[:0]
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitConnective breaks a major clause on the connective 및.
func splitConnective(s string) []string {
	parts := strings.Split(s, "및")
	out := parts[:0]
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// classify matches a fragment against the rule table and returns the
// numeric capture groups, zero where absent.
func classify(frag string) (fragmentKind, []int, bool) {
	for _, rule := range fragmentRules {
		m := rule.re.FindStringSubmatch(frag)
		if m == nil {
			continue
		}
		groups := make([]int, len(m)-1)
		for i, g := range m[1:] {
			if g == "" {
				continue
			}
			n, err := strconv.Atoi(g)
			if err != nil {
				return 0, nil, false
			}
			groups[i] = n
		}
		return rule.Kind, groups, true
	}
	return 0, nil, false
}
