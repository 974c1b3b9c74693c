package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hack2hire/domain"
	"hack2hire/infrastructure"
	"hack2hire/usecase"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []infrastructure.InterviewEvent
}

func (r *recordingPublisher) Publish(_ context.Context, e infrastructure.InterviewEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestRouter(t *testing.T) (*gin.Engine, *recordingPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	service := usecase.NewService(
		infrastructure.NewMemorySessionStore(),
		domain.DefaultCatalog(),
		usecase.NewSelector(usecase.NewRandomSource(7)),
		usecase.NewEvaluator(),
		logger,
	)

	events := &recordingPublisher{}
	router := NewRouter(logger, []string{"http://example.test"})
	NewHTTPHandler(router, &HTTPHandler{
		Interview: service,
		Extractor: infrastructure.NewTextExtractor(nil, logger),
		Events:    events,
		Logger:    logger,
	})
	return router, events
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func startSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/start-session", gin.H{
		"resume_text": "Go and Docker, 4 years",
		"jd_text":     "Backend engineer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func nextQuestion(t *testing.T, router *gin.Engine, id string) map[string]any {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/next-question?session_id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRoot(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hack2Hire API is running"}`, w.Body.String())
}

func TestInterviewFlow(t *testing.T) {
	router, events := newTestRouter(t)
	id := startSession(t, router)

	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		q := nextQuestion(t, router, id)
		qid, ok := q["id"].(string)
		require.True(t, ok, "question payload: %v", q)
		assert.False(t, seen[qid], "question %s repeated", qid)
		seen[qid] = true

		answer := strings.Repeat("word ", 35)
		if i%2 == 1 {
			answer = "one two three four five"
		}
		w := doJSON(t, router, http.MethodPost, "/api/submit-answer", gin.H{
			"session_id":         id,
			"question_id":        qid,
			"answer_text":        answer,
			"time_taken_seconds": 30,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var score domain.Score
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &score))
		assert.Equal(t, (score.Clarity+score.TechnicalAccuracy+score.Relevance)/3, score.Overall)
	}

	done := nextQuestion(t, router, id)
	assert.Equal(t, "Interview Complete", done["message"])
	assert.Equal(t, true, done["is_complete"])

	w := doJSON(t, router, http.MethodGet, "/api/results/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 8, summary.TotalQuestions)
	assert.Len(t, summary.History, 8)
	// Alternating 86 and 36.
	assert.Equal(t, 61, summary.FinalScore)
	assert.Equal(t, domain.ReadinessModerateFit, summary.Readiness)

	types := events.types()
	require.NotEmpty(t, types)
	assert.Equal(t, infrastructure.EventSessionStarted, types[0])
	assert.Equal(t, infrastructure.EventResultsViewed, types[len(types)-1])
}

func TestResults_EmptyHistory(t *testing.T) {
	router, _ := newTestRouter(t)
	id := startSession(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/results/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"final_score":0,"readiness":"Needs Improvement","history":[],"total_questions":0}`, w.Body.String())
}

func TestUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"next question", http.MethodPost, "/api/next-question?session_id=missing", nil},
		{"submit answer", http.MethodPost, "/api/submit-answer", gin.H{"session_id": "missing", "question_id": "1", "answer_text": "hi"}},
		{"results", http.MethodGet, "/api/results/missing", nil},
		{"submit with empty session id", http.MethodPost, "/api/submit-answer", gin.H{"session_id": "", "question_id": "1", "answer_text": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"error":"Session not found"}`, w.Body.String())
		})
	}
}

func TestBadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/next-question", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/start-session", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitUnknownQuestionAccepted(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
	}{
		{"unknown id", "does-not-exist"},
		{"empty id", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			id := startSession(t, router)

			w := doJSON(t, router, http.MethodPost, "/api/submit-answer", gin.H{
				"session_id":  id,
				"question_id": tt.questionID,
				"answer_text": "short",
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = doJSON(t, router, http.MethodGet, "/api/results/"+id, nil)
			var summary domain.Summary
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
			require.Len(t, summary.History, 1)
			assert.Equal(t, "Unknown", summary.History[0].Question.Text)
			assert.Equal(t, tt.questionID, summary.History[0].Question.ID)
		})
	}
}

func TestResults_KeyPointsSerializedAsArray(t *testing.T) {
	router, _ := newTestRouter(t)
	id := startSession(t, router)

	q := nextQuestion(t, router, id)
	assert.Equal(t, []any{}, q["expected_key_points"])

	w := doJSON(t, router, http.MethodPost, "/api/submit-answer", gin.H{
		"session_id":  id,
		"question_id": q["id"],
		"answer_text": "short",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/results/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw struct {
		History []struct {
			Question map[string]any `json:"question"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw.History, 1)
	assert.Equal(t, []any{}, raw.History[0].Question["expected_key_points"])
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadResume(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("text resume", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "cv.txt", "Python and SQL developer with 3 years of experience"))
		require.Equal(t, http.StatusOK, w.Code)

		var summary domain.ResumeSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, []string{"Python", "SQL"}, summary.Skills)
		assert.Equal(t, 3.0, summary.ExperienceYears)
	})

	t.Run("invalid format", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "cv.png", "binary"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid file format"}`, w.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://example.test", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:8081", true},
		{"https://hack2hire.vercel.app", true},
		{"https://api.onrender.com", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
