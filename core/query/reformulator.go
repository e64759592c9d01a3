package query

import "strings"

// Question prefixes rewritten to statement form to widen recall
var questionPrefixes = []string{
	"what is the",
	"what are the",
	"what is",
	"what are",
	"how do i",
	"how do you",
	"how can i",
	"how does",
	"how to",
	"where is",
	"where can i find",
	"why is",
	"why does",
	"when was",
	"tell me about",
	"show me",
}

// Domain-neutral synonym expansions applied one term at a time
var synonyms = map[string]string{
	"price":    "pricing",
	"pricing":  "cost",
	"cost":     "price",
	"docs":     "documentation",
	"guide":    "tutorial",
	"tutorial": "guide",
	"error":    "issue",
	"issue":    "problem",
	"bug":      "issue",
	"install":  "setup",
	"setup":    "installation",
	"delete":   "remove",
	"remove":   "delete",
	"create":   "add",
	"faq":      "questions",
	"compare":  "comparison",
	"speed":    "performance",
	"fast":     "performance",
}

// Reformulator produces alternative phrasings of a query.
// Reformulations are pure text transforms with no request-scoped I/O.
type Reformulator struct {
	maxVariants int
}

// NewReformulator creates a new reformulator producing at most maxVariants
// variants (including the original query, which is always first).
func NewReformulator(maxVariants int) *Reformulator {
	if maxVariants < 1 {
		maxVariants = 1
	}
	return &Reformulator{maxVariants: maxVariants}
}

// Reformulate returns a non-empty list of query variants. The original query
// is always the first element; a statement rewrite and a synonym expansion
// follow when they apply and differ from variants already collected.
func (r *Reformulator) Reformulate(query string) []string {
	variants := []string{query}
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(query)): true}

	add := func(variant string) {
		variant = strings.TrimSpace(variant)
		key := strings.ToLower(variant)
		if variant == "" || seen[key] || len(variants) >= r.maxVariants {
			return
		}
		seen[key] = true
		variants = append(variants, variant)
	}

	add(questionToStatement(query))
	add(expandSynonyms(query))

	return variants
}

// questionToStatement strips a leading question phrase and a trailing question
// mark. Returns the empty string when the query is not in question form.
func questionToStatement(query string) string {
	trimmed := strings.TrimSpace(query)
	lower := strings.ToLower(trimmed)

	rewritten := ""
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			rewritten = trimmed[len(prefix)+1:]
			break
		}
	}
	if rewritten == "" && strings.HasSuffix(trimmed, "?") {
		rewritten = trimmed
	}
	if rewritten == "" {
		return ""
	}

	return strings.TrimSpace(strings.TrimSuffix(rewritten, "?"))
}

// expandSynonyms replaces the first term that has a known synonym.
// Returns the empty string when no term matches.
func expandSynonyms(query string) string {
	tokens := strings.Fields(query)
	for i, token := range tokens {
		if replacement, ok := synonyms[normalizeTerm(token)]; ok {
			expanded := make([]string, len(tokens))
			copy(expanded, tokens)
			expanded[i] = replacement
			return strings.Join(expanded, " ")
		}
	}
	return ""
}
