package domain

type QuestionType string

const (
	QuestionTechnical  QuestionType = "technical"
	QuestionBehavioral QuestionType = "behavioral"
	QuestionConceptual QuestionType = "conceptual"
	QuestionCoding     QuestionType = "coding"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is an interviewable prompt. It is immutable once placed in a catalog.
type Question struct {
	ID                string       `gorm:"primaryKey;size:64" json:"id"`
	Text              string       `gorm:"type:text;not null" json:"text"`
	Type              QuestionType `gorm:"size:32;not null" json:"type"`
	Difficulty        Difficulty   `gorm:"size:16;not null;index" json:"difficulty"`
	Topic             string       `gorm:"size:128" json:"topic"`
	ExpectedKeyPoints []string     `gorm:"serializer:json" json:"expected_key_points"`
}

func (Question) TableName() string {
	return "questions"
}

// Clone returns a copy that shares no memory with q. ExpectedKeyPoints is
// never nil in the copy.
func (q Question) Clone() Question {
	c := q
	c.ExpectedKeyPoints = append([]string{}, q.ExpectedKeyPoints...)
	return c
}

// PlaceholderQuestion stands in for an id the catalog does not know.
func PlaceholderQuestion(id string) Question {
	return Question{
		ID:         id,
		Text:       "Unknown",
		Type:       QuestionTechnical,
		Difficulty: DifficultyEasy,
		Topic:      "Unknown",

		ExpectedKeyPoints: []string{},
	}
}
