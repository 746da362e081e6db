package stats

// stopWords is the fixed filler-word set excluded from word-frequency
// ranking: articles, pronouns, auxiliary verbs, conjunctions, and common
// prepositions. Tokens of one or two runes are dropped before this set
// applies, so entries like "a", "an", "is" never reach it.
var stopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "nor": true,
	"yet": true, "not": true,

	"you": true, "your": true, "yours": true, "she": true, "her": true,
	"hers": true, "him": true, "his": true, "its": true, "our": true,
	"ours": true, "they": true, "them": true, "their": true, "theirs": true,
	"this": true, "that": true, "these": true, "those": true, "who": true,
	"whom": true, "what": true, "which": true,

	"was": true, "were": true, "are": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "does": true, "did": true,
	"will": true, "would": true, "shall": true, "should": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,

	"with": true, "from": true, "into": true, "onto": true, "over": true,
	"under": true, "about": true, "after": true, "before": true,
	"then": true, "than": true, "when": true, "while": true, "because": true,
	"there": true, "here": true, "very": true, "just": true, "also": true,
}
