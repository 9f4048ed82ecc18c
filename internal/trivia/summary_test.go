package trivia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummaryKeepsInputOrder(t *testing.T) {
	cats := []Category{{ID: 3, Type: "Geography"}, {ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}

	summary := BuildSummary(cats)

	assert.Equal(t, []int{3, 1, 2}, summary.IDs())
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Equal(t, `{"3":"Geography","1":"Science","2":"Art"}`, string(data))
}

func TestBuildSummaryDuplicateOverwritesLabel(t *testing.T) {
	summary := BuildSummary([]Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}, {ID: 1, Type: "Sciences"}})

	assert.Equal(t, []int{1, 2}, summary.IDs())
	label, ok := summary.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "Sciences", label)
}

func TestBuildSummaryIsIdempotent(t *testing.T) {
	cats := []Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}

	first := BuildSummary(cats)
	second := BuildSummary(cats)

	assert.Equal(t, first, second)
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}

func TestBuildSummaryForQuestionsSkipsDanglingCategories(t *testing.T) {
	questions := []Question{
		{ID: 1, Category: 1},
		{ID: 2, Category: 1},
		{ID: 3, Category: 2},
		{ID: 4, Category: 99},
	}
	lookup := LookupFrom([]Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}})

	summary := BuildSummaryForQuestions(questions, lookup)

	data, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Equal(t, `{"1":"Science","2":"Art"}`, string(data))
	_, ok := summary.Get(99)
	assert.False(t, ok)
}

func TestBuildSummaryForQuestionsOrdersByFirstSeen(t *testing.T) {
	questions := []Question{{Category: 5}, {Category: 2}, {Category: 5}, {Category: 1}}
	lookup := LookupFrom([]Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}, {ID: 5, Type: "Entertainment"}})

	summary := BuildSummaryForQuestions(questions, lookup)

	assert.Equal(t, []int{5, 2, 1}, summary.IDs())
}

func TestBuildSummaryForQuestionsNilLookup(t *testing.T) {
	summary := BuildSummaryForQuestions([]Question{{Category: 1}}, nil)
	assert.Equal(t, 0, summary.Len())
}

func TestEmptySummaryEncodesAsObject(t *testing.T) {
	data, err := json.Marshal(NewSummary())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	var zero Summary
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
