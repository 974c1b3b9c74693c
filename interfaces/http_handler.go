package interfaces

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hack2hire/domain"
	"hack2hire/infrastructure"
	"hack2hire/usecase"
)

const maxUploadBytes = 10 << 20

// ResumeExtractor turns an uploaded file into plain text, returning "" on failure.
type ResumeExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) string
}

// EventPublisher receives interview milestones after the engine has handled them.
type EventPublisher interface {
	Publish(ctx context.Context, event infrastructure.InterviewEvent) error
}

type HTTPHandler struct {
	Interview *usecase.Service
	Extractor ResumeExtractor
	Events    EventPublisher
	Logger    *zap.Logger
}

func NewHTTPHandler(router *gin.Engine, h *HTTPHandler) {
	if h.Events == nil {
		h.Events = infrastructure.NopPublisher{}
	}
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}

	router.GET("/", h.Root)

	api := router.Group("/api")
	api.POST("/upload-resume", h.UploadResume)
	api.POST("/start-session", h.StartSession)
	api.POST("/next-question", h.NextQuestion)
	api.POST("/submit-answer", h.SubmitAnswer)
	api.GET("/results/:id", h.GetResults)
}

func (h *HTTPHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hack2Hire API is running"})
}

// UploadResume extracts text from a resume file and returns the parsed summary.
func (h *HTTPHandler) UploadResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !infrastructure.SupportedResumeFile(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file format"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	text := h.Extractor.ExtractText(c.Request.Context(), data, header.Filename)
	h.Logger.Info("resume uploaded",
		zap.String("file", header.Filename),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len(text)),
	)

	c.JSON(http.StatusOK, usecase.ParseResume(text))
}

type startSessionRequest struct {
	ResumeText    string `json:"resume_text"`
	JDText        string `json:"jd_text"`
	CandidateName string `json:"candidate_name"`
}

func (h *HTTPHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Interview.Start(c.Request.Context(), usecase.StartParams{
		CandidateName:  req.CandidateName,
		ResumeText:     req.ResumeText,
		JobDescription: req.JDText,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(c, infrastructure.InterviewEvent{Type: infrastructure.EventSessionStarted, SessionID: id})
	c.JSON(http.StatusOK, gin.H{"session_id": id})
}

func (h *HTTPHandler) NextQuestion(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	q, ok, err := h.Interview.NextQuestion(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Interview Complete", "is_complete": true})
		return
	}

	c.JSON(http.StatusOK, q)
}

type submitAnswerRequest struct {
	SessionID        string `json:"session_id"`
	QuestionID       string `json:"question_id"`
	AnswerText       string `json:"answer_text"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

func (h *HTTPHandler) SubmitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.Interview.SubmitAnswer(c.Request.Context(), usecase.SubmitParams{
		SessionID:        req.SessionID,
		QuestionID:       req.QuestionID,
		AnswerText:       req.AnswerText,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(c, infrastructure.InterviewEvent{
		Type:       infrastructure.EventAnswerScored,
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
		Overall:    score.Overall,
	})
	c.JSON(http.StatusOK, score)
}

func (h *HTTPHandler) GetResults(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))

	summary, err := h.Interview.Results(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(c, infrastructure.InterviewEvent{
		Type:       infrastructure.EventResultsViewed,
		SessionID:  sessionID,
		FinalScore: summary.FinalScore,
		Readiness:  summary.Readiness,
	})
	c.JSON(http.StatusOK, summary)
}

func (h *HTTPHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	h.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// publish is best effort; a broker outage never fails the request.
func (h *HTTPHandler) publish(c *gin.Context, event infrastructure.InterviewEvent) {
	event.At = time.Now().UTC()
	if err := h.Events.Publish(c.Request.Context(), event); err != nil {
		h.Logger.Warn("publish interview event failed", zap.String("type", event.Type), zap.Error(err))
	}
}
