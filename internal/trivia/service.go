package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionRepo interface {
	ListAll(ctx context.Context) ([]sqlcgen.Question, error)
	ListByCategory(ctx context.Context, categoryID int32) ([]sqlcgen.Question, error)
	Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int64, error)
}

type categoryRepo interface {
	ListAll(ctx context.Context) ([]sqlcgen.Category, error)
	Find(ctx context.Context, id int32) (sqlcgen.Category, bool, error)
}

// QuestionPage is one page of a question listing plus its category context.
type QuestionPage struct {
	Questions       []Question
	Total           int
	Categories      Summary
	CurrentCategory Summary
}

// SearchResult holds every match of a search (searches are not paginated).
type SearchResult struct {
	Questions       []Question
	CurrentCategory Summary
}

// QuizCategory selects the quiz pool; ID 0 means every category.
type QuizCategory struct {
	ID   int    `json:"id" validate:"gte=0,lte=2147483647"`
	Type string `json:"type"`
}

// UnmarshalJSON accepts the id as a number or a numeric string; browser
// clients send category ids taken from object keys.
func (c *QuizCategory) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   json.RawMessage `json:"id"`
		Type string          `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = raw.Type
	c.ID = 0
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	var n int64
	if err := json.Unmarshal(raw.ID, &n); err == nil {
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("quiz_category.id %d out of range", n)
		}
		c.ID = int(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.ID, &s); err != nil {
		return fmt.Errorf("quiz_category.id: %w", err)
	}
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fmt.Errorf("quiz_category.id %q: %w", s, err)
	}
	c.ID = int(id)
	return nil
}

// QuizRequest is one step of a quiz session. The client tracks served ids.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

// ServiceOptions tunes listing and quiz behavior.
type ServiceOptions struct {
	PageSize  int
	EmptyTerm EmptyTermPolicy
	Picker    *Picker
}

// Service composes the store with the paging, summary, search and picking engine.
type Service struct {
	questions  questionRepo
	categories categoryRepo
	cache      CategoryCache
	picker     *Picker
	pageSize   int
	emptyTerm  EmptyTermPolicy
	logger     zerolog.Logger
}

// NewService wires a Service. cache may be nil.
func NewService(questions questionRepo, categories categoryRepo, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	picker := opts.Picker
	if picker == nil {
		picker = NewPicker()
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		picker:     picker,
		pageSize:   pageSize,
		emptyTerm:  opts.EmptyTerm,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns the full category summary; ErrNotFound when there are none.
func (s *Service) Categories(ctx context.Context) (Summary, error) {
	cats, err := s.listCategories(ctx)
	if err != nil {
		return Summary{}, err
	}
	if len(cats) == 0 {
		return Summary{}, ErrNotFound
	}
	return BuildSummary(cats), nil
}

// ListQuestions pages every question. current_category covers the whole listing.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	all := toQuestions(rows)

	current, err := Paginate(all, page, s.pageSize)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(current) == 0 {
		return QuestionPage{}, fmt.Errorf("questions page %d: %w", page, ErrNotFound)
	}

	cats, err := s.listCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}

	return QuestionPage{
		Questions:       current,
		Total:           len(all),
		Categories:      BuildSummary(cats),
		CurrentCategory: BuildSummaryForQuestions(all, LookupFrom(cats)),
	}, nil
}

// QuestionsByCategory pages the questions of one category.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (QuestionPage, error) {
	dbID, ok := storeID(categoryID)
	if !ok {
		return QuestionPage{}, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	rows, err := s.questions.ListByCategory(ctx, dbID)
	if err != nil {
		return QuestionPage{}, err
	}
	all := toQuestions(rows)

	current, err := Paginate(all, page, s.pageSize)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(current) == 0 {
		return QuestionPage{}, fmt.Errorf("category %d page %d: %w", categoryID, page, ErrNotFound)
	}

	row, found, err := s.categories.Find(ctx, dbID)
	if err != nil {
		return QuestionPage{}, err
	}
	lookup := func(id int) (Category, bool) {
		if !found || id != int(row.ID) {
			return Category{}, false
		}
		return toCategory(row), true
	}
	if !found {
		s.logger.Debug().Int("category_id", categoryID).Msg("questions reference a missing category")
	}

	return QuestionPage{
		Questions:       current,
		Total:           len(all),
		CurrentCategory: BuildSummaryForQuestions(all, lookup),
	}, nil
}

// SearchQuestions matches question text against term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, term *string) (SearchResult, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	matches := SearchWithPolicy(toQuestions(rows), term, s.emptyTerm)
	searchResults.Observe(float64(len(matches)))

	cats, err := s.listCategories(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		Questions:       matches,
		CurrentCategory: BuildSummaryForQuestions(matches, LookupFrom(cats)),
	}, nil
}

// CreateQuestion stores q and returns it with the new question total.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion) (Question, int, error) {
	categoryID, ok := storeID(q.Category)
	if !ok {
		return Question{}, 0, fmt.Errorf("category %d: %w", q.Category, ErrInvalidInput)
	}
	difficulty, ok := storeID(q.Difficulty)
	if !ok {
		return Question{}, 0, fmt.Errorf("difficulty %d: %w", q.Difficulty, ErrInvalidInput)
	}
	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Difficulty: difficulty,
		CategoryID: categoryID,
	})
	if err != nil {
		return Question{}, 0, err
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return Question{}, 0, err
	}
	return toQuestion(row), int(total), nil
}

// DeleteQuestion removes a question by id.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	dbID, ok := storeID(id)
	if !ok {
		return fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	if err := s.questions.Delete(ctx, dbID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

// NextQuizQuestion returns an unseen random question from the requested
// category, or nil once every question in it has been served.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	categoryID := AllCategories
	if req.QuizCategory != nil {
		categoryID = req.QuizCategory.ID
	}

	var (
		rows []sqlcgen.Question
		err  error
	)
	if categoryID == AllCategories {
		rows, err = s.questions.ListAll(ctx)
	} else {
		dbID, ok := storeID(categoryID)
		if !ok {
			quizPicks.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("category %d: %w", categoryID, ErrInvalidInput)
		}
		rows, err = s.questions.ListByCategory(ctx, dbID)
	}
	if err != nil {
		return nil, err
	}

	q, ok, err := s.picker.Pick(toQuestions(rows), NewIDSet(req.PreviousQuestions...))
	if err != nil {
		quizPicks.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}
	if !ok {
		quizPicks.WithLabelValues("exhausted").Inc()
		s.logger.Debug().
			Int("category_id", categoryID).
			Int("served", len(req.PreviousQuestions)).
			Msg("quiz pool exhausted")
		return nil, nil
	}
	quizPicks.WithLabelValues("served").Inc()
	return &q, nil
}

// RefreshCategoryCache reloads categories from the store into the cache and
// returns how many were cached. Without a cache it is a no-op.
func (s *Service) RefreshCategoryCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	cats, err := s.loadCategories(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Set(ctx, cats); err != nil {
		return 0, fmt.Errorf("write category cache: %w", err)
	}
	return len(cats), nil
}

// listCategories reads through the cache; cache failures fall back to the store.
func (s *Service) listCategories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cats, hit, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			categoryCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("category cache read failed")
		case hit:
			categoryCacheLookups.WithLabelValues("hit").Inc()
			return cats, nil
		default:
			categoryCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	cats, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cats); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return cats, nil
}

func (s *Service) loadCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cats := make([]Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, toCategory(row))
	}
	return cats, nil
}

// storeID narrows an id to the store's int32 columns, reporting false when it
// does not fit.
func storeID(id int) (int32, bool) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   int(row.CategoryID),
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toCategory(row sqlcgen.Category) Category {
	return Category{ID: int(row.ID), Type: row.Type}
}
