package domain

// Catalog is a fixed set of questions. It is safe for concurrent reads and
// hands out copies only.
type Catalog struct {
	questions []Question
	byID      map[string]int
}

// NewCatalog builds a catalog from qs. Later duplicates of an id are dropped.
func NewCatalog(qs []Question) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(qs))}
	for _, q := range qs {
		if _, dup := c.byID[q.ID]; dup {
			continue
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q.Clone())
	}
	return c
}

func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i].Clone(), true
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.Clone()
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// DefaultQuestions is the built-in question bank.
func DefaultQuestions() []Question {
	return []Question{
		{ID: "1", Text: "Can you walk me through your experience with React and why you prefer it over other frameworks?", Type: QuestionTechnical, Difficulty: DifficultyEasy, Topic: "Frontend"},
		{ID: "2", Text: "Explain the difference between SQL and NoSQL databases. When would you choose one over the other?", Type: QuestionTechnical, Difficulty: DifficultyEasy, Topic: "Databases"},
		{ID: "3", Text: "Describe a time you faced a difficult technical challenge. How did you approach it?", Type: QuestionBehavioral, Difficulty: DifficultyMedium, Topic: "Experience"},
		{ID: "4", Text: "How does the Virtual DOM work in React, and how does it improve performance?", Type: QuestionTechnical, Difficulty: DifficultyMedium, Topic: "Frontend"},
		{ID: "5", Text: "Design a scalable URL shortening service like Bit.ly. Discuss the database schema and caching strategy.", Type: QuestionTechnical, Difficulty: DifficultyHard, Topic: "System Design"},
		{ID: "6", Text: "What are the key differences between a process and a thread?", Type: QuestionTechnical, Difficulty: DifficultyMedium, Topic: "OS"},
		{ID: "7", Text: "Explain the concept of RESTful APIs. What are the constraints?", Type: QuestionTechnical, Difficulty: DifficultyEasy, Topic: "API"},
		{ID: "8", Text: "How would you handle a situation where a team member is not pulling their weight?", Type: QuestionBehavioral, Difficulty: DifficultyMedium, Topic: "Teamwork"},
	}
}

func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultQuestions())
}
