package app

import (
	"math/rand"

	"quizmaster/internal/domain"
)

// Selector picks the questions for one session: filter the bank by
// difficulty, fall back to the whole bank when fewer than perSession
// match, shuffle, and keep the prefix.
type Selector struct {
	rnd        *rand.Rand
	perSession int
}

func NewSelector(rnd *rand.Rand, perSession int) *Selector {
	return &Selector{rnd: rnd, perSession: perSession}
}

// Select returns fresh question copies with shuffled options and full
// visibility, plus the bank index of each pick.
func (s *Selector) Select(bank []domain.Question, difficulty int) ([]domain.Question, []int, error) {
	if len(bank) == 0 {
		return nil, nil, domain.ErrBankEmpty
	}

	pool := make([]int, 0, len(bank))
	for i := range bank {
		if bank[i].Difficulty == difficulty {
			pool = append(pool, i)
		}
	}
	if len(pool) < s.perSession {
		pool = pool[:0]
		for i := range bank {
			pool = append(pool, i)
		}
	}

	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	count := s.perSession
	if len(pool) < count {
		count = len(pool)
	}

	questions := make([]domain.Question, count)
	indices := make([]int, count)
	for i := 0; i < count; i++ {
		q := bank[pool[i]]
		ShuffleOptions(s.rnd, &q)
		q.ResetVisibility()
		questions[i] = q
		indices[i] = pool[i]
	}
	return questions, indices, nil
}
