// Package query provides the pure text transforms of the retrieval engine:
// keyword extraction, query reformulation and domain hint detection.
package query

import "strings"

// MaxKeywords is the largest number of terms keyword extraction returns
const MaxKeywords = 10

// minTermLength filters out terms that carry too little signal for full-text search
const minTermLength = 3

// Stop words to filter out of keyword queries
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "or": true,
	"in": true, "that": true, "this": true, "have": true, "has": true, "had": true,
	"it": true, "for": true, "not": true, "on": true, "with": true, "as": true,
	"you": true, "your": true, "do": true, "does": true, "did": true, "at": true,
	"but": true, "by": true, "from": true, "about": true, "into": true, "can": true,
	"what": true, "which": true, "who": true, "how": true, "why": true, "where": true,
	"when": true, "will": true, "would": true, "should": true, "could": true,
	"there": true, "their": true, "them": true, "they": true, "its": true,
	"any": true, "all": true, "some": true, "more": true, "most": true, "other": true,
	"than": true, "then": true, "out": true, "our": true, "get": true, "show": true,
	"find": true, "tell": true, "please": true, "info": true, "information": true,
}

// normalizeTerm lowercases a token and strips everything but letters and digits
func normalizeTerm(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractKeywords turns a raw query into an ordered list of normalized search
// terms: lowercase, alphanumeric, longer than two characters, stopwords
// removed, capped at MaxKeywords. If nothing survives normalization the raw
// query is returned as a single term so that keyword search never receives an
// empty term set for a non-empty query.
func ExtractKeywords(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var terms []string

	for _, token := range strings.Fields(query) {
		cleaned := normalizeTerm(token)
		if len(cleaned) < minTermLength || stopWords[cleaned] || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		terms = append(terms, cleaned)

		if len(terms) >= MaxKeywords {
			break
		}
	}

	if len(terms) == 0 {
		return []string{strings.ToLower(strings.TrimSpace(query))}
	}

	return terms
}
