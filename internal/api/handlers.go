package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/biomentor-ai/biomentor/internal/curriculum"
	"github.com/biomentor-ai/biomentor/internal/rag"
	"github.com/biomentor-ai/biomentor/internal/tutor"
)

const (
	maxRequestBody = 1 << 20 // 1MB
	readyTimeout   = 2 * time.Second

	defaultQuizCount = 5
	maxQuizCount     = 10
	maxSearchTopK    = 20
)

// decodeJSON reads a size-limited JSON request body into dst. Returns
// false after writing the error response itself.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body exceeds 1MB", s.logger)
			return false
		}
		WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON request body", s.logger)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports whether dependencies are usable. Without a
// database pool the service runs purely in-memory and is always ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "ready",
		"retrieval": string(s.retrieval.Strategy()),
		"demo_mode": s.tutor.DemoMode(),
	}

	if s.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.pool.Ping(ctx); err != nil {
			s.logger.Warn("readiness database ping failed", "error", err)
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			WriteJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		stats := s.pool.Stat()
		resp["database"] = map[string]any{
			"total_conns": stats.TotalConns(),
			"idle_conns":  stats.IdleConns(),
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// topicSummary is the catalog view of a topic, without its content
// entries (those are served through retrieval, not directly).
type topicSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	Prerequisites []string `json:"prerequisites"`
	Subtopics     []string `json:"subtopics"`
}

func summarizeTopic(t curriculum.Topic) topicSummary {
	return topicSummary{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Difficulty:    t.Difficulty,
		Prerequisites: t.Prerequisites,
		Subtopics:     t.Subtopics,
	}
}

func (s *Server) handleTopics(w http.ResponseWriter, _ *http.Request) {
	topics := curriculum.AllTopics()
	out := make([]topicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, summarizeTopic(t))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"topics": out})
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	t, ok := curriculum.TopicByID(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "topic_not_found", "unknown topic: "+id, s.logger)
		return
	}
	WriteJSON(w, http.StatusOK, summarizeTopic(t))
}

// handleSearch exposes raw retrieval results, mainly for debugging the
// corpus and tuning queries.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "missing_query", "query parameter q is required", s.logger)
		return
	}

	var opts []rag.SearchOption
	if topic := r.URL.Query().Get("topic"); topic != "" {
		opts = append(opts, rag.WithTopic(topic))
	}
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k < 1 || k > maxSearchTopK {
			WriteError(w, http.StatusBadRequest, "invalid_top_k", "top_k must be an integer between 1 and 20", s.logger)
			return
		}
		opts = append(opts, rag.WithTopK(k))
	}

	hits, err := s.retrieval.Retrieve(r.Context(), query, opts...)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "search_failed", "retrieval failed", s.logger)
		return
	}
	if hits == nil {
		hits = []rag.Hit{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"strategy": string(s.retrieval.Strategy()),
		"results":  hits,
	})
}

type chatRequest struct {
	Message string          `json:"message"`
	History []tutor.Message `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "missing_message", "message is required", s.logger)
		return
	}

	reply := s.tutor.Chat(r.Context(), req.Message, req.History)
	WriteJSON(w, http.StatusOK, map[string]string{"response": reply})
}

type quizRequest struct {
	Topic       string             `json:"topic"`
	Difficulty  string             `json:"difficulty"`
	Count       int                `json:"num_questions"`
	Performance *tutor.Performance `json:"performance"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		WriteError(w, http.StatusBadRequest, "missing_topic", "topic is required", s.logger)
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	if req.Count <= 0 {
		req.Count = defaultQuizCount
	}
	if req.Count > maxQuizCount {
		req.Count = maxQuizCount
	}

	quiz := s.tutor.GenerateQuiz(r.Context(), req.Topic, req.Difficulty, req.Count, req.Performance)
	WriteJSON(w, http.StatusOK, quiz)
}

type learningPathRequest struct {
	StudentData map[string]any `json:"student_data"`
}

func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	var req learningPathRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	path := s.tutor.GenerateLearningPath(r.Context(), req.StudentData)
	WriteJSON(w, http.StatusOK, path)
}

type reportRequest struct {
	Topic      string `json:"topic"`
	Subtopic   string `json:"subtopic"`
	ReportType string `json:"report_type"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		WriteError(w, http.StatusBadRequest, "missing_topic", "topic is required", s.logger)
		return
	}
	if req.ReportType == "" {
		req.ReportType = "summary"
	}

	report := s.tutor.GenerateStudyReport(r.Context(), req.Topic, req.Subtopic, req.ReportType)
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleExamPredictor(w http.ResponseWriter, r *http.Request) {
	var req tutor.ExamPredictorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, s.tutor.PredictExam(r.Context(), req))
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req tutor.DiagramRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		WriteError(w, http.StatusBadRequest, "missing_topic", "topic is required", s.logger)
		return
	}
	WriteJSON(w, http.StatusOK, s.tutor.CreateDiagram(r.Context(), req))
}

func (s *Server) handleMistakeAnalyzer(w http.ResponseWriter, r *http.Request) {
	var req tutor.MistakeAnalyzerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, s.tutor.AnalyzeMistakes(r.Context(), req))
}

func (s *Server) handleRevision(w http.ResponseWriter, r *http.Request) {
	var req tutor.RevisionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" {
		WriteError(w, http.StatusBadRequest, "missing_topic", "topic is required", s.logger)
		return
	}
	WriteJSON(w, http.StatusOK, s.tutor.GenerateRevision(r.Context(), req))
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	var req tutor.RoadmapRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	WriteJSON(w, http.StatusOK, s.tutor.GenerateRoadmap(r.Context(), req))
}
