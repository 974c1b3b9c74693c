package infrastructure

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hack2hire/domain"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// MemorySessionStore keeps sessions for the lifetime of the process. Each
// session has its own lock; operations on different sessions never contend.
type MemorySessionStore struct {
	sessions sync.Map // id -> *sessionEntry
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{now: time.Now}
}

// Create stores a copy of session under a fresh random id.
func (m *MemorySessionStore) Create(session *domain.Session) (string, error) {
	s := session.Clone()
	if s.StartTime.IsZero() {
		s.StartTime = m.now()
	}
	if s.State == "" {
		s.State = domain.StateCreated
	}

	for {
		id := uuid.NewString()
		s.ID = id
		if _, loaded := m.sessions.LoadOrStore(id, &sessionEntry{session: s}); !loaded {
			return id, nil
		}
	}
}

func (m *MemorySessionStore) Get(id string) (*domain.Session, error) {
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

func (m *MemorySessionStore) AppendHistory(id string, rec domain.AnswerRecord) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}
	rec.Question = rec.Question.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.History = append(e.session.History, rec)
	return nil
}

// MarkIssued records the last question handed out and the session state.
// An empty questionID leaves the previous one in place.
func (m *MemorySessionStore) MarkIssued(id string, questionID string, state domain.SessionState) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if questionID != "" {
		e.session.LastIssuedQuestionID = questionID
	}
	e.session.State = state
	return nil
}

// Len reports how many sessions are held.
func (m *MemorySessionStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (m *MemorySessionStore) entry(id string) (*sessionEntry, error) {
	v, ok := m.sessions.Load(id)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return v.(*sessionEntry), nil
}
