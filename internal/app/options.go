package app

import (
	"math/rand"

	"quizmaster/internal/domain"
)

// ShuffleOptions uniformly permutes the four options of q and moves the
// correct index with them, so options[CorrectIndex] always stays textually
// identical to the correct answer.
func ShuffleOptions(rnd *rand.Rand, q *domain.Question) {
	perm := rnd.Perm(domain.MaxOptions)
	var shuffled [domain.MaxOptions]string
	newCorrect := 0
	for to, from := range perm {
		shuffled[to] = q.Options[from]
		if from == q.CorrectIndex {
			newCorrect = to
		}
	}
	q.Options = shuffled
	q.CorrectIndex = newCorrect
}

// FiftyFifty returns a visibility bitmap exposing exactly the correct
// option and one uniformly chosen wrong option. Rendering walks indices in
// ascending order, so the pair gives no positional hint.
func FiftyFifty(rnd *rand.Rand, q domain.Question) [domain.MaxOptions]bool {
	wrongs := make([]int, 0, domain.MaxOptions-1)
	for i := 0; i < domain.MaxOptions; i++ {
		if i != q.CorrectIndex {
			wrongs = append(wrongs, i)
		}
	}
	var visible [domain.MaxOptions]bool
	visible[q.CorrectIndex] = true
	visible[wrongs[rnd.Intn(len(wrongs))]] = true
	return visible
}
