package usecase

import (
	"math"
	"strings"

	"hack2hire/domain"
)

const (
	FeedbackTooShort = "Your answer was too short. Please elaborate more."
	FeedbackDetailed = "Good detailed response. You covered key aspects."
	FeedbackDecent   = "Decent answer, but could be more specific."
)

// Evaluator scores answers by length alone. It is a stand-in for a grading
// model: the question text and expected key points do not affect the score.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Evaluate(_ domain.Question, answer string) domain.Score {
	words := len(strings.Fields(answer))

	clarity := int(math.Min(100, math.Round(float64(words)*1.5)))
	technical := 70
	relevance := 85

	var feedback string
	switch {
	case words < 10:
		feedback = FeedbackTooShort
		clarity = 30
		technical = 30
		relevance = 50
	case words > 30:
		feedback = FeedbackDetailed
		technical = 85
		clarity = 90
	default:
		feedback = FeedbackDecent
	}

	return domain.NewScore(clarity, technical, relevance, feedback)
}
