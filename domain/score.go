package domain

type Score struct {
	Clarity           int    `json:"clarity"`
	TechnicalAccuracy int    `json:"technical_accuracy"`
	Relevance         int    `json:"relevance"`
	Overall           int    `json:"overall"`
	Feedback          string `json:"feedback"`
}

// NewScore builds a Score with Overall as the floored mean of the three ratings.
func NewScore(clarity, technical, relevance int, feedback string) Score {
	return Score{
		Clarity:           clarity,
		TechnicalAccuracy: technical,
		Relevance:         relevance,
		Overall:           (clarity + technical + relevance) / 3,
		Feedback:          feedback,
	}
}
