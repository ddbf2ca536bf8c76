package lawcite

import (
	"fmt"
	"strings"
)

// Citation is one normalized law citation. Article is always set on an
// emitted citation; Paragraph, Item and SubItem are optional refinements
// with 0 meaning absent.
type Citation struct {
	RawLawName string `json:"raw_law_name"`
	ShortName  string `json:"short_name"`
	Article    int    `json:"article"`
	Paragraph  int    `json:"paragraph,omitempty"`
	Item       int    `json:"item,omitempty"`
	SubItem    int    `json:"sub_item,omitempty"`
}

// String renders the citation in the document's own form, e.g.
// "자본시장법 제19조제1항제2호".
func (c Citation) String() string {
	var b strings.Builder
	b.WriteString(c.ShortName)
	fmt.Fprintf(&b, " 제%d조", c.Article)
	if c.Paragraph > 0 {
		fmt.Fprintf(&b, "제%d항", c.Paragraph)
	}
	if c.Item > 0 {
		fmt.Fprintf(&b, "제%d호", c.Item)
	}
	if c.SubItem > 0 {
		fmt.Fprintf(&b, "의%d", c.SubItem)
	}
	return b.String()
}

// Provision reports the article detail without the law name, used by
// validation to reject placeholder citations.
func (c Citation) Provision() string {
	if c.Article == 0 {
		return ""
	}
	full := c.String()
	return strings.TrimSpace(strings.TrimPrefix(full, c.ShortName))
}
