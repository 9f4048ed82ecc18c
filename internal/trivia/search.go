package trivia

import "strings"

// EmptyTermPolicy decides what an absent or empty search term matches.
type EmptyTermPolicy int

const (
	// EmptyTermMatchesNone returns no results for an empty term.
	EmptyTermMatchesNone EmptyTermPolicy = iota
	// EmptyTermMatchesAll returns every question for an empty term.
	EmptyTermMatchesAll
)

// Search returns questions whose text contains term, ignoring case.
// A nil or empty term matches nothing.
func Search(questions []Question, term *string) []Question {
	return SearchWithPolicy(questions, term, EmptyTermMatchesNone)
}

// SearchWithPolicy is Search with an explicit empty-term policy.
func SearchWithPolicy(questions []Question, term *string, policy EmptyTermPolicy) []Question {
	if term == nil || *term == "" {
		if policy == EmptyTermMatchesAll {
			out := make([]Question, len(questions))
			copy(out, questions)
			return out
		}
		return []Question{}
	}

	needle := strings.ToLower(*term)
	matches := make([]Question, 0)
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}
	return matches
}
