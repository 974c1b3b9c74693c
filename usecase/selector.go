package usecase

import (
	"math/rand"
	"sync"

	"hack2hire/domain"
)

// RandomSource drives the random choices of the Selector.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a RandomSource safe for concurrent use.
func NewRandomSource(seed int64) RandomSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Selector picks the next question with a three-step difficulty ladder:
// promote after a strong answer, hold after a mediocre one, drop to easy
// after a weak one.
type Selector struct {
	rnd RandomSource
}

func NewSelector(rnd RandomSource) *Selector {
	return &Selector{rnd: rnd}
}

// Next returns an unseen question, or false when the catalog is exhausted
// for this history.
func (s *Selector) Next(catalog *domain.Catalog, history []domain.AnswerRecord) (domain.Question, bool) {
	seen := make(map[string]struct{}, len(history))
	for _, rec := range history {
		seen[rec.Question.ID] = struct{}{}
	}

	var available []domain.Question
	for _, q := range catalog.All() {
		if _, ok := seen[q.ID]; !ok {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return domain.Question{}, false
	}

	target := s.targetDifficulty(history)

	var candidates []domain.Question
	for _, q := range available {
		if q.Difficulty == target {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		candidates = available
	}

	return candidates[s.rnd.Intn(len(candidates))], true
}

func (s *Selector) targetDifficulty(history []domain.AnswerRecord) domain.Difficulty {
	if len(history) == 0 {
		return domain.DifficultyEasy
	}

	last := history[len(history)-1].Score.Overall
	switch {
	case last > 75:
		if s.rnd.Float64() > 0.5 {
			return domain.DifficultyHard
		}
		return domain.DifficultyMedium
	case last > 50:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyEasy
	}
}
