package domain

import "time"

const DefaultCandidateName = "Candidate"

type SessionState string

const (
	StateCreated    SessionState = "created"
	StateInProgress SessionState = "in_progress"
	StateExhausted  SessionState = "exhausted"
)

type ResumeSummary struct {
	RawText         string   `json:"raw_text"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	Projects        []string `json:"projects"`
}

// AnswerRecord is one scored answer. The question is stored by value so later
// catalog changes cannot alter it.
type AnswerRecord struct {
	Question  Question `json:"question"`
	Answer    string   `json:"answer"`
	Score     Score    `json:"score"`
	TimeTaken int      `json:"time_taken"`
}

type Session struct {
	ID                   string         `json:"session_id"`
	CandidateName        string         `json:"candidate_name"`
	Resume               *ResumeSummary `json:"resume_data,omitempty"`
	JobDescription       string         `json:"job_description,omitempty"`
	History              []AnswerRecord `json:"history"`
	State                SessionState   `json:"state"`
	LastIssuedQuestionID string         `json:"last_issued_question_id,omitempty"`
	IsActive             bool           `json:"is_active"`
	StartTime            time.Time      `json:"start_time"`
}

// Clone deep-copies the session so callers never share history with the store.
func (s *Session) Clone() *Session {
	c := *s
	if s.Resume != nil {
		r := *s.Resume
		r.Skills = append([]string{}, s.Resume.Skills...)
		r.Projects = append([]string{}, s.Resume.Projects...)
		c.Resume = &r
	}
	c.History = make([]AnswerRecord, len(s.History))
	for i, rec := range s.History {
		rec.Question = rec.Question.Clone()
		c.History[i] = rec
	}
	return &c
}
