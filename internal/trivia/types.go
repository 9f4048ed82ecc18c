package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// DefaultPageSize is the number of questions served per listing page.
const DefaultPageSize = 10

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories = 0

var (
	// ErrInvalidInput marks calls the engine refuses (empty quiz pool, non-positive page or page size).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks an empty page or a missing record at the service layer.
	ErrNotFound = errors.New("not found")
)

// Question is the normalized question payload delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// Category is a question grouping with a display label.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the fields required to create a question.
type NewQuestion struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	Category   int    `json:"category" validate:"required,gt=0,lte=2147483647"`
}

// IDSet holds question ids already served during a quiz session.
type IDSet map[int]struct{}

// NewIDSet builds a set from a list of ids; duplicates collapse.
func NewIDSet(ids ...int) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Summary is an ordered category id -> label mapping. Keys keep the position
// of their first insertion; re-setting a key only replaces its label.
type Summary struct {
	ids    []int
	labels map[int]string
}

// NewSummary returns an empty summary.
func NewSummary() Summary {
	return Summary{labels: map[int]string{}}
}

// Set inserts or relabels id.
func (s *Summary) Set(id int, label string) {
	if s.labels == nil {
		s.labels = map[int]string{}
	}
	if _, ok := s.labels[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.labels[id] = label
}

// Get returns the label for id.
func (s Summary) Get(id int) (string, bool) {
	label, ok := s.labels[id]
	return label, ok
}

// IDs returns the keys in insertion order.
func (s Summary) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of entries.
func (s Summary) Len() int {
	return len(s.ids)
}

// MarshalJSON encodes the summary as a JSON object with keys in insertion order.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(id)))
		buf.WriteByte(':')
		label, err := json.Marshal(s.labels[id])
		if err != nil {
			return nil, err
		}
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
