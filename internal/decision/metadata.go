package decision

import (
	"fmt"
	"regexp"
)

// Metadata identifies a decision document. Year and SequenceID come
// from the 제YYYY-N호 decision number; Category1/Category2 are left
// empty for the enrichment stage to backfill.
type Metadata struct {
	Year       int    `json:"year"`
	SequenceID int    `json:"sequence_id"`
	Month      int    `json:"month,omitempty"`
	Day        int    `json:"day,omitempty"`
	Title      string `json:"title"`
	Category1  string `json:"category1,omitempty"`
	Category2  string `json:"category2,omitempty"`
}

// AgendaNo renders the agenda number, 제N호.
func (m Metadata) AgendaNo() string {
	return fmt.Sprintf("제%d호", m.SequenceID)
}

var (
	decisionNumber = regexp.MustCompile(`제(\d{4})-(\d+)호`)
	decisionDate   = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
	filenameTitle  = regexp.MustCompile(`_([^_]+?)(?:\(공개용\))?\.pdf$`)
)

// ParseMetadata recovers document metadata from the filename and body.
// The filename carries the decision number and title; the body carries
// the decision date. Fields that cannot be recovered stay zero so
// validation can flag them, rather than being papered over with
// fabricated defaults.
func ParseMetadata(text, filename string) Metadata {
	var m Metadata
	if num := decisionNumber.FindStringSubmatch(filename); num != nil {
		m.Year = atoi(num[1])
		m.SequenceID = atoi(num[2])
	} else if num := decisionNumber.FindStringSubmatch(text); num != nil {
		m.Year = atoi(num[1])
		m.SequenceID = atoi(num[2])
	}
	if date := decisionDate.FindStringSubmatch(text); date != nil {
		m.Year = atoi(date[1])
		m.Month = atoi(date[2])
		m.Day = atoi(date[3])
	}
	if title := filenameTitle.FindStringSubmatch(filename); title != nil {
		m.Title = title[1]
	}
	return m
}

// atoi on digit-only regex captures; a capture that overflows int is
// out of domain anyway.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
