package query

import (
	"regexp"
	"strings"
)

// Hint specificity weights. A fully qualified domain is a stronger signal
// than a well-known platform name, which in turn beats a generic subdomain word.
const (
	WeightFullDomain    = 1.0
	WeightPlatform      = 0.9
	WeightSubdomainWord = 0.75
)

// DomainHint is a source restriction extracted from the query text
type DomainHint struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// fqdnPattern matches fully qualified domains like docs.example.com
var fqdnPattern = regexp.MustCompile(`\b(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}\b`)

// Well-known platform names that imply a source domain
var platformDomains = map[string]string{
	"github":        "github.com",
	"gitlab":        "gitlab.com",
	"stackoverflow": "stackoverflow.com",
	"reddit":        "reddit.com",
	"youtube":       "youtube.com",
	"twitter":       "twitter.com",
	"linkedin":      "linkedin.com",
	"medium":        "medium.com",
	"wikipedia":     "wikipedia.org",
	"substack":      "substack.com",
	"notion":        "notion.so",
}

// Common subdomain words that hint at a source section
var subdomainWords = []string{"blog", "docs", "api", "support", "help", "forum", "wiki", "news"}

// ExtractDomainHints extracts source restrictions from the query text:
// fully qualified domains, well-known platform names and common subdomain
// words, in that order. An empty result means the query names no source and
// the domain-filtered strategy should not fire.
func ExtractDomainHints(queryText string) []DomainHint {
	lower := strings.ToLower(queryText)

	var hints []DomainHint
	seen := make(map[string]bool)

	add := func(value string, weight float64) {
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		hints = append(hints, DomainHint{Value: value, Weight: weight})
	}

	fqdns := fqdnPattern.FindAllString(lower, -1)
	for _, fqdn := range fqdns {
		add(fqdn, WeightFullDomain)
	}

	// Tokens already covered by a matched domain must not fire again as
	// platform names or subdomain words.
	covered := strings.Join(fqdns, " ")

	for _, token := range strings.Fields(lower) {
		cleaned := normalizeTerm(token)
		if cleaned == "" || strings.Contains(covered, cleaned) {
			continue
		}
		if domain, ok := platformDomains[cleaned]; ok {
			add(domain, WeightPlatform)
		}
	}

	for _, word := range subdomainWords {
		if strings.Contains(covered, word) {
			continue
		}
		for _, token := range strings.Fields(lower) {
			if normalizeTerm(token) == word {
				add(word, WeightSubdomainWord)
				break
			}
		}
	}

	return hints
}
