// Package lawcite parses the legal-basis block of a regulator decision
// into normalized law citations.
//
// A legal-basis block names one or more laws inside paired ｢…｣ markers,
// each followed by article text:
//
//	｢자본시장과 금융투자업에 관한 법률｣ 제10조제2항 및 제3항, 제19조제1항제2호 및 제3호
//
// Article text splits on commas into major clauses and on the
// connective 및 into sub-clauses. The first sub-clause of a clause
// carries the full 제N조(제M항)?(제K호)?(의S)? form and establishes the
// base provision; later sub-clauses are abbreviations (제M항 or 제K호
// alone) expanded against that base. The fragment grammar is an ordered
// rule table so that classification priority is data, not control flow.
package lawcite
