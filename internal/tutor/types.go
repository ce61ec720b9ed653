package tutor

// Message is one turn of a chat conversation, as supplied by the caller.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Performance summarizes a student's track record on a topic, used to
// adapt quiz difficulty.
type Performance struct {
	MasteryLevel string   `json:"mastery_level"`
	LastScore    string   `json:"last_score"`
	WeakAreas    []string `json:"weak_areas"`
	StrongAreas  []string `json:"strong_areas"`
}

// Question is a single generated quiz question.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	Subtopic      string   `json:"subtopic"`
	BloomLevel    string   `json:"bloom_level"`
}

// Quiz is the structured result of quiz generation.
type Quiz struct {
	Questions []Question `json:"questions"`
	// Disclaimer is set when the quiz is a degraded canned response.
	Disclaimer string `json:"disclaimer,omitempty"`
}

// Recommendation is one prioritized step in a learning path.
type Recommendation struct {
	Priority             int      `json:"priority"`
	Topic                string   `json:"topic"`
	Action               string   `json:"action"` // review|study|practice|advance
	Reason               string   `json:"reason"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	Resources            []string `json:"resources"`
}

// LearningPath is the structured result of learning-path generation.
type LearningPath struct {
	Assessment      string           `json:"assessment"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Recommendations []Recommendation `json:"recommendations"`
	NextMilestone   string           `json:"next_milestone"`
	OverallProgress float64          `json:"overall_progress"`
	Disclaimer      string           `json:"disclaimer,omitempty"`
}

// StudyReport wraps a generated markdown study report with its request
// parameters and the model that produced it ("demo" when degraded).
type StudyReport struct {
	Report     string `json:"report"`
	Topic      string `json:"topic"`
	Subtopic   string `json:"subtopic"`
	ReportType string `json:"report_type"`
	ModelUsed  string `json:"model_used"`
}

// ProgressRecord is one topic's learning progress, supplied by the
// caller (progress storage lives outside this service).
type ProgressRecord struct {
	Topic             string  `json:"topic"`
	Mastery           float64 `json:"mastery"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
}

// QuizRecord is one completed quiz attempt summary.
type QuizRecord struct {
	Topic      string  `json:"topic"`
	Score      float64 `json:"score"`
	Difficulty string  `json:"difficulty"`
	Total      int     `json:"total,omitempty"`
	Correct    int     `json:"correct,omitempty"`
}

// Mistake is one incorrectly answered quiz question, fed to the mistake
// analyzer.
type Mistake struct {
	Question      string `json:"question"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	Topic         string `json:"topic"`
	Subtopic      string `json:"subtopic"`
	Difficulty    string `json:"difficulty"`
}

// Advanced feature requests. Each maps to one prompt builder and one
// feature tag.

type ExamPredictorRequest struct {
	Progress    []ProgressRecord `json:"progress"`
	QuizHistory []QuizRecord     `json:"quiz_history"`
}

type DiagramRequest struct {
	Topic       string `json:"topic"`
	DiagramType string `json:"diagram_type"` // flowchart|mindmap|cycle|comparison|hierarchy
}

type MistakeAnalyzerRequest struct {
	Mistakes []Mistake `json:"mistakes"`
}

type RevisionRequest struct {
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
	Mastery         string `json:"mastery"`
}

type RoadmapRequest struct {
	Goal        string           `json:"goal"` // exam_ready|deep_understanding|quick_overview
	Weeks       int              `json:"weeks"`
	Progress    []ProgressRecord `json:"progress"`
	QuizHistory []QuizRecord     `json:"quiz_history"`
}

// FeatureResult is the loosely structured JSON payload of an advanced
// feature. Shapes differ per feature, so it stays a generic map.
type FeatureResult map[string]any
