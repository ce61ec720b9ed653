package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/biomentor-ai/biomentor/internal/curriculum"
	"github.com/biomentor-ai/biomentor/internal/llm"
	"github.com/biomentor-ai/biomentor/internal/log"
	"github.com/biomentor-ai/biomentor/internal/rag"
)

// fakeOrch implements the generator seam with a scripted result.
type fakeOrch struct {
	text    string
	model   string
	err     error
	lastReq llm.Request
	calls   int
}

func (f *fakeOrch) Generate(_ context.Context, req llm.Request) (llm.Result, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return llm.Result{}, f.err
	}
	model := f.model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return llm.Result{Text: f.text, Model: model}, nil
}

func curriculumRetrieval() *rag.Service {
	var docs []rag.Chunk
	for _, src := range curriculum.AllContentChunks() {
		docs = append(docs, rag.Chunk{
			Content: src.Text,
			Metadata: rag.Metadata{
				TopicID:    src.TopicID,
				TopicName:  src.TopicName,
				Subtopic:   src.Subtopic,
				Difficulty: src.Difficulty,
				Source:     curriculum.SourceTag,
			},
		})
	}
	return rag.NewKeyword(docs, rag.WithLogger(log.NewNop()))
}

func liveService(f *fakeOrch) *Service {
	return newServiceWithGenerator(f, curriculumRetrieval(), log.NewNop())
}

func demoService() *Service {
	return NewService(nil, curriculumRetrieval(), log.NewNop())
}

func TestChatLive(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: "Helicase unwinds the double helix — think of it as a zipper slider."}
	svc := liveService(f)

	got := svc.Chat(context.Background(), "How does helicase work?", nil)
	if got != f.text {
		t.Errorf("Chat() = %q, want the generated text", got)
	}
	if !strings.Contains(f.lastReq.System, "BioMentor AI") {
		t.Errorf("system prompt missing tutor persona:\n%s", f.lastReq.System)
	}
	// Retrieval found helicase content, so the system prompt must carry it.
	if !strings.Contains(f.lastReq.System, "Reference material from the curriculum") {
		t.Error("system prompt missing curriculum grounding for an on-topic question")
	}
}

func TestChatHistoryFolding(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: "Sure, building on that..."}
	svc := liveService(f)

	history := []Message{
		{Role: "user", Content: "What is PCR?"},
		{Role: "assistant", Content: "PCR amplifies DNA."},
	}
	svc.Chat(context.Background(), "And what about the annealing step?", history)

	if !strings.Contains(f.lastReq.Prompt, "Student: What is PCR?") {
		t.Errorf("prompt missing folded history:\n%s", f.lastReq.Prompt)
	}
	if !strings.Contains(f.lastReq.Prompt, "Tutor: PCR amplifies DNA.") {
		t.Errorf("prompt missing assistant turn:\n%s", f.lastReq.Prompt)
	}
	if !strings.Contains(f.lastReq.Prompt, "And what about the annealing step?") {
		t.Errorf("prompt missing the new message:\n%s", f.lastReq.Prompt)
	}
}

func TestChatDegradesWithDisclaimer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "all models cooling down", err: llm.ErrNoModelAvailable},
		{name: "attempts exhausted", err: llm.ErrAttemptsExhausted},
		{name: "fatal backend error", err: errors.New("prompt blocked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := liveService(&fakeOrch{err: tt.err})
			got := svc.Chat(context.Background(), "Explain CRISPR", nil)
			if got == "" {
				t.Fatal("Chat() returned empty response on backend failure")
			}
			if !strings.Contains(got, DisclaimerMarker) {
				t.Errorf("degraded Chat() missing disclaimer marker:\n%s", got)
			}
		})
	}
}

func TestChatDemoModeGreeting(t *testing.T) {
	t.Parallel()

	got := demoService().Chat(context.Background(), "hello there", nil)
	if !strings.Contains(got, "Welcome to BioMentor AI") {
		t.Errorf("greeting response = %q, want the welcome message", got)
	}
}

func TestGenerateQuizLive(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: `{"questions":[{"id":1,"question":"Which enzyme unwinds DNA?","type":"multiple_choice","options":["A) Ligase","B) Helicase"],"correct_answer":"B","explanation":"Helicase separates the strands.","difficulty":"easy","topic":"Molecular Biology","subtopic":"DNA Replication","bloom_level":"remember"}]}`}
	svc := liveService(f)

	quiz := svc.GenerateQuiz(context.Background(), "Molecular Biology", "easy", 1, nil)
	if len(quiz.Questions) != 1 {
		t.Fatalf("GenerateQuiz() returned %d questions, want 1", len(quiz.Questions))
	}
	if quiz.Questions[0].CorrectAnswer != "B" {
		t.Errorf("parsed correct answer = %q, want B", quiz.Questions[0].CorrectAnswer)
	}
	if quiz.Disclaimer != "" {
		t.Errorf("live quiz carries a disclaimer: %q", quiz.Disclaimer)
	}
	if !f.lastReq.Config.JSONOutput {
		t.Error("quiz request not flagged for JSON output")
	}
}

func TestGenerateQuizPerformanceAdaptation(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: `{"questions":[{"id":1,"question":"q","correct_answer":"A"}]}`}
	svc := liveService(f)

	perf := &Performance{MasteryLevel: "intermediate", WeakAreas: []string{"CRISPR-Cas9"}}
	svc.GenerateQuiz(context.Background(), "Genetic Engineering", "medium", 3, perf)

	if !strings.Contains(f.lastReq.Prompt, "Mastery Level: intermediate") {
		t.Errorf("prompt missing performance data:\n%s", f.lastReq.Prompt)
	}
	if !strings.Contains(f.lastReq.Prompt, "CRISPR-Cas9") {
		t.Errorf("prompt missing weak areas:\n%s", f.lastReq.Prompt)
	}
}

func TestGenerateQuizParseFailureDegrades(t *testing.T) {
	t.Parallel()

	svc := liveService(&fakeOrch{text: "Sorry, I cannot produce JSON today."})
	quiz := svc.GenerateQuiz(context.Background(), "Genetic Engineering", "medium", 2, nil)

	if len(quiz.Questions) != 2 {
		t.Fatalf("degraded quiz has %d questions, want requested 2", len(quiz.Questions))
	}
	if quiz.Disclaimer == "" {
		t.Error("degraded quiz missing disclaimer")
	}
	if quiz.Questions[0].Topic != "Genetic Engineering" {
		t.Errorf("canned question topic = %q, want the requested topic", quiz.Questions[0].Topic)
	}
}

func TestGenerateLearningPathLive(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: `{"assessment":"Solid fundamentals.","strengths":["PCR"],"weaknesses":["CRISPR"],"recommendations":[{"priority":1,"topic":"Genetic Engineering","action":"review","reason":"gaps","estimated_time_minutes":45,"resources":["CRISPR-Cas9"]}],"next_milestone":"Finish module","overall_progress":0.5}`}
	svc := liveService(f)

	path := svc.GenerateLearningPath(context.Background(), map[string]any{"quizzes_taken": 3})
	if path.Assessment != "Solid fundamentals." {
		t.Errorf("Assessment = %q, want parsed value", path.Assessment)
	}
	if len(path.Recommendations) != 1 || path.Recommendations[0].Action != "review" {
		t.Errorf("Recommendations = %+v, want single review item", path.Recommendations)
	}
	if !strings.Contains(f.lastReq.Prompt, "quizzes_taken") {
		t.Errorf("prompt missing student data:\n%s", f.lastReq.Prompt)
	}
}

func TestGenerateLearningPathDegrades(t *testing.T) {
	t.Parallel()

	svc := liveService(&fakeOrch{err: llm.ErrNoModelAvailable})
	path := svc.GenerateLearningPath(context.Background(), nil)
	if path.Assessment == "" || len(path.Recommendations) == 0 {
		t.Error("degraded learning path is not structurally complete")
	}
	if path.Disclaimer == "" {
		t.Error("degraded learning path missing disclaimer")
	}
}

func TestGenerateStudyReportLive(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: "## Study Report\nDetails...", model: "gemini-2.0-flash-lite"}
	svc := liveService(f)

	report := svc.GenerateStudyReport(context.Background(), "Immunology", "Vaccines", "revision")
	if report.Report != "## Study Report\nDetails..." {
		t.Errorf("Report = %q, want generated text", report.Report)
	}
	if report.ModelUsed != "gemini-2.0-flash-lite" {
		t.Errorf("ModelUsed = %q, want the serving model", report.ModelUsed)
	}
	if report.ReportType != "revision" {
		t.Errorf("ReportType = %q, want revision", report.ReportType)
	}
	if !strings.Contains(f.lastReq.Prompt, "revision notes") {
		t.Errorf("prompt missing the revision style instruction:\n%s", f.lastReq.Prompt)
	}
}

func TestGenerateStudyReportDegrades(t *testing.T) {
	t.Parallel()

	svc := liveService(&fakeOrch{err: llm.ErrAttemptsExhausted})
	report := svc.GenerateStudyReport(context.Background(), "Bioinformatics", "", "summary")
	if report.ModelUsed != "demo" {
		t.Errorf("ModelUsed = %q, want demo", report.ModelUsed)
	}
	if !strings.Contains(report.Report, DisclaimerMarker) {
		t.Error("degraded report missing disclaimer marker")
	}
}

func TestAdvancedFeaturesNeverError(t *testing.T) {
	t.Parallel()

	svc := liveService(&fakeOrch{err: llm.ErrNoModelAvailable})
	ctx := context.Background()

	results := map[string]FeatureResult{
		"exam predictor":   svc.PredictExam(ctx, ExamPredictorRequest{}),
		"diagram creator":  svc.CreateDiagram(ctx, DiagramRequest{Topic: "CRISPR", DiagramType: "flowchart"}),
		"mistake analyzer": svc.AnalyzeMistakes(ctx, MistakeAnalyzerRequest{}),
		"revision mode":    svc.GenerateRevision(ctx, RevisionRequest{Topic: "PCR"}),
		"study roadmap":    svc.GenerateRoadmap(ctx, RoadmapRequest{}),
	}

	for name, result := range results {
		if len(result) == 0 {
			t.Errorf("%s returned an empty degraded payload", name)
			continue
		}
		if _, ok := result["disclaimer"]; !ok {
			t.Errorf("%s degraded payload missing disclaimer field", name)
		}
	}
}

func TestFeatureJSONLiveParse(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: `{"mermaid_code":"graph TD\n  A --> B","title":"PCR Steps"}`}
	svc := liveService(f)

	result := svc.CreateDiagram(context.Background(), DiagramRequest{Topic: "PCR", DiagramType: "flowchart"})
	if result["title"] != "PCR Steps" {
		t.Errorf("parsed title = %v, want PCR Steps", result["title"])
	}
	if _, degraded := result["disclaimer"]; degraded {
		t.Error("live feature payload carries a disclaimer")
	}
	if !strings.Contains(f.lastReq.Prompt, "Mermaid flowchart") {
		t.Errorf("prompt missing diagram instruction:\n%s", f.lastReq.Prompt)
	}
}

func TestRoadmapDefaults(t *testing.T) {
	t.Parallel()

	f := &fakeOrch{text: `{"goal":"exam_ready"}`}
	svc := liveService(f)

	svc.GenerateRoadmap(context.Background(), RoadmapRequest{})
	if !strings.Contains(f.lastReq.Prompt, "4-week study roadmap") {
		t.Errorf("prompt missing defaulted duration:\n%s", f.lastReq.Prompt)
	}
	if !strings.Contains(f.lastReq.Prompt, "exam_ready") {
		t.Errorf("prompt missing defaulted goal:\n%s", f.lastReq.Prompt)
	}
}

func TestDemoModeAllFeatures(t *testing.T) {
	t.Parallel()

	svc := demoService()
	if !svc.DemoMode() {
		t.Fatal("service without an orchestrator should report demo mode")
	}
	ctx := context.Background()

	if quiz := svc.GenerateQuiz(ctx, "Immunology", "easy", 3, nil); len(quiz.Questions) != 3 {
		t.Errorf("demo quiz has %d questions, want 3", len(quiz.Questions))
	}
	if path := svc.GenerateLearningPath(ctx, nil); len(path.Strengths) == 0 {
		t.Error("demo learning path missing strengths")
	}
	if report := svc.GenerateStudyReport(ctx, "PCR", "", "summary"); report.ModelUsed != "demo" {
		t.Errorf("demo report ModelUsed = %q, want demo", report.ModelUsed)
	}
	if result := svc.PredictExam(ctx, ExamPredictorRequest{}); result["overall_probability"] == nil {
		t.Error("demo exam prediction missing probability")
	}
}
