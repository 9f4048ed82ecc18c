package trivia

import (
	"fmt"
	"math/rand/v2"
)

// RandomSource draws a uniform integer in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

// IntN uses the package-level generator, which is safe for concurrent use.
func (globalSource) IntN(n int) int { return rand.IntN(n) }

// drawsPerMember bounds rejection sampling before falling back to an explicit draw.
const drawsPerMember = 8

// Picker hands out one unseen random question per call.
type Picker struct {
	rnd      RandomSource
	maxDraws int
}

// PickerOption customises a Picker.
type PickerOption func(*Picker)

// WithRandomSource replaces the default generator, e.g. with a seeded one in tests.
func WithRandomSource(src RandomSource) PickerOption {
	return func(p *Picker) {
		if src != nil {
			p.rnd = src
		}
	}
}

// WithMaxDraws caps rejected draws per call; non-positive means drawsPerMember*len(pool).
func WithMaxDraws(n int) PickerOption {
	return func(p *Picker) { p.maxDraws = n }
}

// NewPicker builds a Picker backed by math/rand/v2 unless overridden.
func NewPicker(opts ...PickerOption) *Picker {
	p := &Picker{rnd: globalSource{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pick returns a uniformly random pool member whose id is not in previous.
// ok is false once every pool member has been served. previous is not modified.
func (p *Picker) Pick(pool []Question, previous IDSet) (q Question, ok bool, err error) {
	if len(pool) == 0 {
		return Question{}, false, fmt.Errorf("empty question pool: %w", ErrInvalidInput)
	}

	distinct := make(map[int]struct{}, len(pool))
	served := 0
	for _, candidate := range pool {
		if _, dup := distinct[candidate.ID]; dup {
			continue
		}
		distinct[candidate.ID] = struct{}{}
		if previous.Has(candidate.ID) {
			served++
		}
	}

	limit := p.maxDraws
	if limit <= 0 {
		limit = drawsPerMember * len(pool)
	}

	for draw := 0; ; draw++ {
		if served >= len(distinct) {
			return Question{}, false, nil
		}
		if draw >= limit {
			return p.pickEligible(pool, previous), true, nil
		}
		candidate := pool[p.rnd.IntN(len(pool))]
		if !previous.Has(candidate.ID) {
			return candidate, true, nil
		}
	}
}

// pickEligible draws uniformly from the unseen members directly. Callers
// guarantee at least one exists.
func (p *Picker) pickEligible(pool []Question, previous IDSet) Question {
	eligible := make([]Question, 0, len(pool))
	for _, candidate := range pool {
		if !previous.Has(candidate.ID) {
			eligible = append(eligible, candidate)
		}
	}
	return eligible[p.rnd.IntN(len(eligible))]
}
