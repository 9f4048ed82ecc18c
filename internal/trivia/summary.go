package trivia

// CategoryLookup resolves a category id; ok is false for dangling references.
type CategoryLookup func(id int) (Category, bool)

// BuildSummary maps every category id to its label in input order.
func BuildSummary(categories []Category) Summary {
	summary := NewSummary()
	for _, c := range categories {
		summary.Set(c.ID, c.Type)
	}
	return summary
}

// BuildSummaryForQuestions maps the categories represented by questions,
// ordered by first appearance. Ids the lookup cannot resolve are skipped.
func BuildSummaryForQuestions(questions []Question, lookup CategoryLookup) Summary {
	summary := NewSummary()
	if lookup == nil {
		return summary
	}
	seen := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		if _, done := seen[q.Category]; done {
			continue
		}
		seen[q.Category] = struct{}{}

		c, ok := lookup(q.Category)
		if !ok {
			continue
		}
		summary.Set(c.ID, c.Type)
	}
	return summary
}

// LookupFrom indexes a category listing so summaries need one store read per request.
func LookupFrom(categories []Category) CategoryLookup {
	index := make(map[int]Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return func(id int) (Category, bool) {
		c, ok := index[id]
		return c, ok
	}
}
