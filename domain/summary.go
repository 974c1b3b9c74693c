package domain

const (
	ReadinessStrongFit        = "Strong Fit"
	ReadinessModerateFit      = "Moderate Fit"
	ReadinessNeedsImprovement = "Needs Improvement"
)

type Summary struct {
	FinalScore     int            `json:"final_score"`
	Readiness      string         `json:"readiness"`
	History        []AnswerRecord `json:"history"`
	TotalQuestions int            `json:"total_questions"`
}

// Summarize aggregates a session history. An empty history scores 0.
func Summarize(history []AnswerRecord) Summary {
	total := 0
	for _, rec := range history {
		total += rec.Score.Overall
	}

	finalScore := 0
	if len(history) > 0 {
		finalScore = total / len(history)
	}

	if history == nil {
		history = []AnswerRecord{}
	}

	return Summary{
		FinalScore:     finalScore,
		Readiness:      Readiness(finalScore),
		History:        history,
		TotalQuestions: len(history),
	}
}

func Readiness(finalScore int) string {
	switch {
	case finalScore > 80:
		return ReadinessStrongFit
	case finalScore > 60:
		return ReadinessModerateFit
	default:
		return ReadinessNeedsImprovement
	}
}
