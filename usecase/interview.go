package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hack2hire/domain"
)

// SessionStore owns every Session. Get returns a snapshot the caller may keep.
type SessionStore interface {
	Create(session *domain.Session) (string, error)
	Get(id string) (*domain.Session, error)
	AppendHistory(id string, rec domain.AnswerRecord) error
	MarkIssued(id string, questionID string, state domain.SessionState) error
}

type StartParams struct {
	CandidateName  string
	ResumeText     string
	JobDescription string
}

type SubmitParams struct {
	SessionID        string
	QuestionID       string
	AnswerText       string
	TimeTakenSeconds int
}

// Service is the interview orchestration engine.
type Service struct {
	store     SessionStore
	catalog   *domain.Catalog
	selector  *Selector
	evaluator *Evaluator
	logger    *zap.Logger
}

func NewService(store SessionStore, catalog *domain.Catalog, selector *Selector, evaluator *Evaluator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		catalog:   catalog,
		selector:  selector,
		evaluator: evaluator,
		logger:    logger,
	}
}

func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// Start opens a new session with an empty history.
func (s *Service) Start(_ context.Context, p StartParams) (string, error) {
	name := strings.TrimSpace(p.CandidateName)
	if name == "" {
		name = domain.DefaultCandidateName
	}

	resume := ParseResume(p.ResumeText)
	id, err := s.store.Create(&domain.Session{
		CandidateName:  name,
		Resume:         &resume,
		JobDescription: p.JobDescription,
		State:          domain.StateCreated,
		IsActive:       true,
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("session started",
		zap.String("session_id", id),
		zap.Int("resume_skills", len(resume.Skills)),
		zap.Int("jd_length", len(p.JobDescription)),
	)
	return id, nil
}

// NextQuestion returns the next unseen question. The boolean is false once
// the catalog is exhausted for this session.
func (s *Service) NextQuestion(_ context.Context, sessionID string) (domain.Question, bool, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return domain.Question{}, false, fmt.Errorf("next question: %w", err)
	}

	q, ok := s.selector.Next(s.catalog, session.History)
	if !ok {
		if err := s.store.MarkIssued(sessionID, "", domain.StateExhausted); err != nil {
			return domain.Question{}, false, fmt.Errorf("next question: %w", err)
		}
		s.logger.Info("interview complete",
			zap.String("session_id", sessionID),
			zap.Int("answered", len(session.History)),
		)
		return domain.Question{}, false, nil
	}

	if err := s.store.MarkIssued(sessionID, q.ID, domain.StateInProgress); err != nil {
		return domain.Question{}, false, fmt.Errorf("next question: %w", err)
	}

	s.logger.Debug("question issued",
		zap.String("session_id", sessionID),
		zap.String("question_id", q.ID),
		zap.String("difficulty", string(q.Difficulty)),
	)
	return q, true, nil
}

// SubmitAnswer scores an answer and appends it to the session history. An
// unknown question id is scored against a placeholder question.
func (s *Service) SubmitAnswer(_ context.Context, p SubmitParams) (domain.Score, error) {
	session, err := s.store.Get(p.SessionID)
	if err != nil {
		return domain.Score{}, fmt.Errorf("submit answer: %w", err)
	}

	if session.LastIssuedQuestionID != p.QuestionID {
		s.logger.Warn("answer for a question that was not the last issued",
			zap.String("session_id", p.SessionID),
			zap.String("question_id", p.QuestionID),
			zap.String("last_issued", session.LastIssuedQuestionID),
		)
	}

	q, ok := s.catalog.Lookup(p.QuestionID)
	if !ok {
		s.logger.Warn("unknown question id, using placeholder",
			zap.String("session_id", p.SessionID),
			zap.String("question_id", p.QuestionID),
		)
		q = domain.PlaceholderQuestion(p.QuestionID)
	}

	score := s.evaluator.Evaluate(q, p.AnswerText)

	err = s.store.AppendHistory(p.SessionID, domain.AnswerRecord{
		Question:  q,
		Answer:    p.AnswerText,
		Score:     score,
		TimeTaken: p.TimeTakenSeconds,
	})
	if err != nil {
		return domain.Score{}, fmt.Errorf("submit answer: %w", err)
	}

	s.logger.Info("answer scored",
		zap.String("session_id", p.SessionID),
		zap.String("question_id", q.ID),
		zap.Int("overall", score.Overall),
		zap.Int("time_taken", p.TimeTakenSeconds),
	)
	return score, nil
}

// Results aggregates the session history into a Summary.
func (s *Service) Results(_ context.Context, sessionID string) (domain.Summary, error) {
	session, err := s.store.Get(sessionID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("results: %w", err)
	}
	return domain.Summarize(session.History), nil
}
