// Package tutor exposes the feature surface of BioMentor AI: chat, quiz
// generation, learning paths, study reports, and the advanced JSON
// features. Every method returns a usable response — when live
// generation is unavailable the result degrades to a canned answer
// carrying a disclaimer, never an error.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/biomentor-ai/biomentor/internal/curriculum"
	"github.com/biomentor-ai/biomentor/internal/llm"
	"github.com/biomentor-ai/biomentor/internal/rag"
)

const noContextSentinel = rag.NoContextSentinel

// Per-feature generation parameters.
var (
	chatConfig         = llm.GenerationConfig{Temperature: 0.75, TopP: 0.95, MaxOutputTokens: 2048}
	quizConfig         = llm.GenerationConfig{Temperature: 0.8, MaxOutputTokens: 3000, JSONOutput: true}
	learningPathConfig = llm.GenerationConfig{Temperature: 0.6, MaxOutputTokens: 2000, JSONOutput: true}
	studyReportConfig  = llm.GenerationConfig{Temperature: 0.5, TopP: 0.95, MaxOutputTokens: 4096}
	featureJSONConfig  = llm.GenerationConfig{Temperature: 0.6, MaxOutputTokens: 4096, JSONOutput: true}
)

// Retrieval depths per feature, matching how much grounding each prompt
// benefits from.
const (
	chatTopK     = 5
	diagramTopK  = 6
	revisionTopK = 8
)

// generator is the orchestrator surface the service needs; *llm.Orchestrator
// satisfies it.
type generator interface {
	Generate(ctx context.Context, req llm.Request) (llm.Result, error)
}

// Service wires retrieval, prompt building, and resilient generation
// into the feature API. A nil orchestrator puts the service in demo
// mode permanently (no credentials configured).
type Service struct {
	orch     generator
	retrieve *rag.Service
	logger   *slog.Logger
}

// NewService creates the feature service. orch may be nil for demo mode.
func NewService(orch *llm.Orchestrator, retrieval *rag.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	var g generator
	if orch != nil {
		g = orch
	}
	return &Service{orch: g, retrieve: retrieval, logger: logger}
}

// newServiceWithGenerator is the test seam for injecting a fake
// orchestrator.
func newServiceWithGenerator(g generator, retrieval *rag.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orch: g, retrieve: retrieval, logger: logger}
}

// DemoMode reports whether live generation is configured.
func (s *Service) DemoMode() bool { return s.orch == nil }

// contextFor retrieves curriculum grounding for a query, degrading to
// the no-context sentinel on any retrieval problem.
func (s *Service) contextFor(ctx context.Context, query string, opts ...rag.SearchOption) string {
	if s.retrieve == nil {
		return noContextSentinel
	}
	return s.retrieve.ContextString(ctx, query, opts...)
}

// Chat answers a student's message, grounded in retrieved curriculum
// content and the recent conversation.
func (s *Service) Chat(ctx context.Context, message string, history []Message) string {
	contextStr := s.contextFor(ctx, message, rag.WithTopK(chatTopK))

	if s.DemoMode() {
		return demoChatResponse(message, contextStr)
	}

	result, err := s.orch.Generate(ctx, llm.Request{
		System: buildChatSystem(contextStr, noContextSentinel),
		Prompt: buildChatPrompt(message, history),
		Config: chatConfig,
	})
	if err != nil {
		s.logger.Warn("chat generation degraded", "error", err)
		return demoChatResponse(message, contextStr) + chatDisclaimer(err)
	}
	return result.Text
}

// chatDisclaimer picks the disclaimer matching how generation failed.
func chatDisclaimer(err error) string {
	if err == nil {
		return ""
	}
	// No model at all reads as "rate limited"; everything else as "busy".
	if errors.Is(err, llm.ErrNoModelAvailable) {
		return rateLimitedDisclaimer
	}
	return serviceBusyDisclaimer
}

// GenerateQuiz produces a structured quiz, adapted to the student's
// performance when provided.
func (s *Service) GenerateQuiz(ctx context.Context, topic, difficulty string, count int, perf *Performance) Quiz {
	contextStr := s.contextFor(ctx, topic)

	if s.DemoMode() {
		return demoQuiz(topic, count)
	}

	result, err := s.orch.Generate(ctx, llm.Request{
		Prompt: buildQuizPrompt(topic, difficulty, count, contextStr, perf),
		Config: quizConfig,
	})
	if err != nil {
		s.logger.Warn("quiz generation degraded", "topic", topic, "error", err)
		return demoQuiz(topic, count)
	}

	var quiz Quiz
	if err := json.Unmarshal([]byte(result.Text), &quiz); err != nil || len(quiz.Questions) == 0 {
		s.logger.Warn("quiz output unparseable, serving canned quiz", "topic", topic, "error", err)
		return demoQuiz(topic, count)
	}
	return quiz
}

// GenerateLearningPath analyzes performance data into prioritized study
// recommendations.
func (s *Service) GenerateLearningPath(ctx context.Context, studentData map[string]any) LearningPath {
	if s.DemoMode() {
		return demoLearningPath()
	}

	result, err := s.orch.Generate(ctx, llm.Request{
		Prompt: buildLearningPathPrompt(studentData, topicCatalogJSON()),
		Config: learningPathConfig,
	})
	if err != nil {
		s.logger.Warn("learning path generation degraded", "error", err)
		return demoLearningPath()
	}

	var path LearningPath
	if err := json.Unmarshal([]byte(result.Text), &path); err != nil || path.Assessment == "" {
		s.logger.Warn("learning path output unparseable, serving canned path", "error", err)
		return demoLearningPath()
	}
	return path
}

// GenerateStudyReport writes a markdown study report on a topic in the
// requested style (summary, detailed, revision, exam_prep).
func (s *Service) GenerateStudyReport(ctx context.Context, topic, subtopic, reportType string) StudyReport {
	query := topic
	if subtopic != "" {
		query = topic + " " + subtopic
	}
	contextStr := s.contextFor(ctx, query)

	if s.DemoMode() {
		return demoStudyReport(topic, subtopic)
	}

	result, err := s.orch.Generate(ctx, llm.Request{
		System: studyReportSystemPrompt,
		Prompt: buildStudyReportPrompt(topic, subtopic, reportType, contextStr),
		Config: studyReportConfig,
	})
	if err != nil {
		s.logger.Warn("study report generation degraded", "topic", topic, "error", err)
		return demoStudyReport(topic, subtopic)
	}

	return StudyReport{
		Report:     result.Text,
		Topic:      topic,
		Subtopic:   subtopic,
		ReportType: reportType,
		ModelUsed:  result.Model,
	}
}

// generateFeatureJSON runs one advanced-feature prompt and parses the
// JSON reply, degrading to the feature's canned payload on any failure.
func (s *Service) generateFeatureJSON(ctx context.Context, feature, prompt string) FeatureResult {
	if s.DemoMode() {
		return demoFeature(feature)
	}

	result, err := s.orch.Generate(ctx, llm.Request{
		Prompt: prompt,
		Config: featureJSONConfig,
	})
	if err != nil {
		s.logger.Warn("feature generation degraded", "feature", feature, "error", err)
		return demoFeature(feature)
	}

	var parsed FeatureResult
	if err := json.Unmarshal([]byte(result.Text), &parsed); err != nil || len(parsed) == 0 {
		s.logger.Warn("feature output unparseable, serving canned payload", "feature", feature, "error", err)
		return demoFeature(feature)
	}
	return parsed
}

// PredictExam estimates exam readiness from progress and quiz history.
func (s *Service) PredictExam(ctx context.Context, req ExamPredictorRequest) FeatureResult {
	return s.generateFeatureJSON(ctx, FeatureExamPredictor, buildExamPredictorPrompt(req, topicCatalogJSON()))
}

// CreateDiagram generates a Mermaid diagram for a topic.
func (s *Service) CreateDiagram(ctx context.Context, req DiagramRequest) FeatureResult {
	contextStr := s.contextFor(ctx, req.Topic, rag.WithTopK(diagramTopK))
	return s.generateFeatureJSON(ctx, FeatureDiagramCreator, buildDiagramPrompt(req, contextStr))
}

// AnalyzeMistakes finds patterns in a student's wrong answers.
func (s *Service) AnalyzeMistakes(ctx context.Context, req MistakeAnalyzerRequest) FeatureResult {
	return s.generateFeatureJSON(ctx, FeatureMistakeAnalyzer, buildMistakeAnalyzerPrompt(req))
}

// GenerateRevision builds a short timed revision session on a topic.
func (s *Service) GenerateRevision(ctx context.Context, req RevisionRequest) FeatureResult {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 5
	}
	contextStr := s.contextFor(ctx, req.Topic, rag.WithTopK(revisionTopK))
	return s.generateFeatureJSON(ctx, FeatureRevisionMode, buildRevisionPrompt(req, contextStr))
}

// GenerateRoadmap plans a multi-week study schedule.
func (s *Service) GenerateRoadmap(ctx context.Context, req RoadmapRequest) FeatureResult {
	if req.Weeks <= 0 {
		req.Weeks = 4
	}
	if req.Goal == "" {
		req.Goal = "exam_ready"
	}
	return s.generateFeatureJSON(ctx, FeatureStudyRoadmap, buildRoadmapPrompt(req, topicCatalogJSON()))
}

// topicCatalogJSON serializes the curriculum topic catalog for prompts
// that reason over the whole syllabus.
func topicCatalogJSON() string {
	type topicSummary struct {
		Name       string   `json:"name"`
		Difficulty string   `json:"difficulty"`
		Subtopics  []string `json:"subtopics"`
	}
	topics := curriculum.AllTopics()
	out := make([]topicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicSummary{Name: t.Name, Difficulty: t.Difficulty, Subtopics: t.Subtopics})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}
