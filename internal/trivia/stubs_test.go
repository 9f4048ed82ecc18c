package trivia

import (
	"context"
	"sort"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memoryStore implements both repository interfaces over in-memory rows.
type memoryStore struct {
	mu         sync.Mutex
	questions  []sqlcgen.Question
	categories []sqlcgen.Category
	nextID     int32
	err        error

	categoryListCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
		nextID: 1,
	}
}

func (m *memoryStore) add(category int32, text string) sqlcgen.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := sqlcgen.Question{ID: m.nextID, Question: text, Answer: "a", Difficulty: 1, CategoryID: category}
	m.nextID++
	m.questions = append(m.questions, row)
	return row
}

type questionStoreView struct{ *memoryStore }

func (v questionStoreView) ListAll(ctx context.Context) ([]sqlcgen.Question, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return nil, v.err
	}
	out := append([]sqlcgen.Question(nil), v.questions...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v questionStoreView) ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error) {
	all, err := v.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []sqlcgen.Question
	for _, q := range all {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (v questionStoreView) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return sqlcgen.Question{}, v.err
	}
	row := sqlcgen.Question{
		ID:         v.nextID,
		Question:   params.Question,
		Answer:     params.Answer,
		Difficulty: params.Difficulty,
		CategoryID: params.CategoryID,
	}
	v.nextID++
	v.questions = append(v.questions, row)
	return row, nil
}

func (v questionStoreView) Delete(ctx context.Context, id int32) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, q := range v.questions {
		if q.ID == id {
			v.questions = append(v.questions[:i], v.questions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (v questionStoreView) Count(ctx context.Context) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int64(len(v.questions)), nil
}

type categoryStoreView struct{ *memoryStore }

func (v categoryStoreView) ListAll(ctx context.Context) ([]sqlcgen.Category, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.categoryListCalls++
	if v.err != nil {
		return nil, v.err
	}
	return append([]sqlcgen.Category(nil), v.categories...), nil
}

func (v categoryStoreView) Find(ctx context.Context, id int32) (sqlcgen.Category, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, c := range v.categories {
		if c.ID == id {
			return c, true, nil
		}
	}
	return sqlcgen.Category{}, false, nil
}

// memoryCache is a CategoryCache kept in process.
type memoryCache struct {
	mu    sync.Mutex
	value []Category
	set   bool
	sets  int
}

func (c *memoryCache) Get(_ context.Context) ([]Category, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.set, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = categories
	c.set = true
	c.sets++
	return nil
}
