package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System prompts for the four core generation features. The JSON shapes
// embedded below are the contract the structured parsers rely on.

const tutorSystemPrompt = `You are BioMentor AI, a friendly and knowledgeable biotechnology tutor. You talk like a helpful human teacher — warm, clear, and engaging.

**How you behave:**
- ALWAYS read the student's question carefully and answer EXACTLY what they asked. Never ignore their question.
- If they ask a simple question, give a simple answer. If they ask for depth, go deep.
- Talk naturally, like a smart friend explaining things — not like a textbook.
- Use everyday analogies to make complex biology concepts click.
- If curriculum context is provided below, use it to enrich your answer, but ALWAYS stay focused on what the student actually asked.
- If the question is a greeting or casual chat, just respond naturally — no need to lecture.
- If you don't know something, be honest about it.
- Keep a conversational tone. Use "you", "think of it like...", "great question!", etc.
- Use markdown (bold, bullets, headings) to keep things readable, but don't over-format simple answers.
- For follow-up questions in a conversation, remember what was discussed and build on it naturally.

You are NOT a search engine that dumps information. You are a tutor who LISTENS and RESPONDS to the student.`

const quizSystemPrompt = `You are BioMentor AI's quiz generation engine. Generate high-quality biotechnology assessment questions.

**Requirements:**
1. Questions must be scientifically accurate and curriculum-aligned
2. Each question should test understanding, not just memorization
3. Include a mix of conceptual, application, and analysis questions
4. Provide clear, unambiguous answer choices
5. Include detailed explanations for each correct answer
6. Reference specific biotechnology concepts and mechanisms

**Output Format (strict JSON):**
Generate a JSON array of question objects with this exact structure:
{
  "questions": [
    {
      "id": 1,
      "question": "Question text here",
      "type": "multiple_choice",
      "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
      "correct_answer": "A",
      "explanation": "Detailed explanation of why this is correct and why others are wrong",
      "difficulty": "easy|medium|hard",
      "topic": "Topic name",
      "subtopic": "Subtopic name",
      "bloom_level": "remember|understand|apply|analyze|evaluate|create"
    }
  ]
}`

const learningPathSystemPrompt = `You are BioMentor AI's learning path advisor. Analyze student performance data and create personalized learning recommendations.

**Guidelines:**
1. Identify knowledge gaps from quiz performance and interaction patterns
2. Suggest topics to review based on weak areas
3. Recommend progression to advanced topics when mastery is demonstrated
4. Provide specific, actionable study recommendations
5. Consider prerequisite relationships between topics
6. Adapt difficulty based on student performance trends

**Output Format (strict JSON):**
{
  "assessment": "Brief assessment of current knowledge level",
  "strengths": ["List of strong areas"],
  "weaknesses": ["List of areas needing improvement"],
  "recommendations": [
    {
      "priority": 1,
      "topic": "Topic name",
      "action": "review|study|practice|advance",
      "reason": "Why this is recommended",
      "estimated_time_minutes": 30,
      "resources": ["Specific subtopics to focus on"]
    }
  ],
  "next_milestone": "Description of next learning milestone",
  "overall_progress": 0.65
}`

const studyReportSystemPrompt = `You are BioMentor AI's Study Report Generator. Your job is to create concise, well-organized study material summaries on biotechnology topics.

**How you work:**
1. Use the curriculum context provided to build an accurate, comprehensive study report.
2. Organize the content with clear sections and headings.
3. Highlight the most important concepts, definitions, and mechanisms.
4. Include relevant examples and real-world applications.
5. Add key terms with their definitions.

**Rules:**
- Be accurate — only include scientifically correct information.
- Make it student-friendly — clear language, good structure, easy to revise from.
- Use markdown formatting (headings, bold, bullets, tables) for readability.
- Include diagrams descriptions where helpful (e.g., describe a pathway step-by-step).
- End with key takeaways that a student should remember.
- Keep it focused on the requested topic/subtopic.

**Response structure (use markdown):**
- **📚 Topic Overview**: Brief introduction to the topic and why it matters in biotechnology.
- **🎯 Learning Objectives**: What the student should understand after reading this.
- **📖 Core Concepts**: The main content — definitions, mechanisms, processes explained clearly.
- **🔬 Key Terms & Definitions**: Important terminology with concise definitions.
- **💡 Real-World Applications**: How this topic is used in industry, medicine, or research.
- **⚡ Quick Revision Points**: Bullet-point summary of the most important facts.
- **❓ Common Exam Questions**: 3-4 questions a student might be asked on this topic.`

// reportTypeInstructions selects the tone and depth of a study report.
var reportTypeInstructions = map[string]string{
	"summary":  "Create a concise summary covering the key concepts. Aim for clarity and brevity — perfect for a quick overview.",
	"detailed": "Create a comprehensive, in-depth study report. Cover all concepts thoroughly with explanations and examples.",
	"revision": "Create quick revision notes — bullet points, key facts, mnemonics, and important formulas/processes. Optimized for last-minute revision.",
	"exam_prep": "Create exam-focused study material — include likely exam questions, important definitions, " +
		"compare-and-contrast sections, and diagram descriptions.",
}

// historyLimit bounds how many prior turns are folded into a chat prompt.
const historyLimit = 10

// buildChatSystem extends the tutor persona with curriculum grounding
// when retrieval produced something usable.
func buildChatSystem(contextStr string, noContext string) string {
	if contextStr == "" || contextStr == noContext {
		return tutorSystemPrompt
	}
	return tutorSystemPrompt +
		"\n\n---\n**Reference material from the curriculum (use ONLY if relevant to the student's question):**\n" +
		contextStr
}

// buildChatPrompt folds recent history and the new message into one
// prompt; the generation backend here takes a single prompt string
// rather than a structured history.
func buildChatPrompt(message string, history []Message) string {
	if len(history) == 0 {
		return message
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	var b strings.Builder
	b.WriteString("**Conversation so far:**\n")
	for _, msg := range history {
		speaker := "Student"
		if msg.Role == "assistant" {
			speaker = "Tutor"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
	}
	b.WriteString("\n**Student's new message:**\n")
	b.WriteString(message)
	return b.String()
}

func buildQuizPrompt(topic, difficulty string, count int, contextStr string, perf *Performance) string {
	performanceContext := ""
	if perf != nil {
		weak := strings.Join(perf.WeakAreas, ", ")
		if weak == "" {
			weak = "none identified"
		}
		strong := strings.Join(perf.StrongAreas, ", ")
		if strong == "" {
			strong = "none identified"
		}
		performanceContext = fmt.Sprintf(`
**Student Performance Data:**
- Mastery Level: %s
- Previous Score: %s
- Weak Areas: %s
- Strong Areas: %s

Adapt question difficulty based on this data. Focus more questions on weak areas.`,
			orDefault(perf.MasteryLevel, "unknown"), orDefault(perf.LastScore, "N/A"), weak, strong)
	}

	return fmt.Sprintf(`%s

Generate %d %s biotechnology quiz questions about: %s

%s

**Curriculum Context:**
%s

Return ONLY valid JSON matching the specified format. No additional text.`,
		quizSystemPrompt, count, difficulty, topic, performanceContext, contextStr)
}

func buildLearningPathPrompt(studentData any, topicsContext string) string {
	studentJSON, err := json.MarshalIndent(studentData, "", "  ")
	if err != nil {
		studentJSON = []byte("{}")
	}
	return fmt.Sprintf(`%s

Analyze the following student performance data and generate a personalized learning path:

**Student Data:**
%s

**Available Curriculum Topics:**
%s

Generate specific, actionable recommendations. Return ONLY valid JSON.`,
		learningPathSystemPrompt, studentJSON, topicsContext)
}

func buildStudyReportPrompt(topic, subtopic, reportType, contextStr string) string {
	typeInstruction, ok := reportTypeInstructions[reportType]
	if !ok {
		typeInstruction = "Create a concise summary."
	}

	subtopicInstruction := ""
	if subtopic != "" {
		subtopicInstruction = fmt.Sprintf("\n\n**Specific subtopic to focus on:** %s", subtopic)
	}

	return fmt.Sprintf(`Generate a study report on the following biotechnology topic:

**Topic:** %s
%s

**Report style:** %s

**Curriculum context to use as the basis for the report:**
%s

Use the curriculum context provided above as the primary source. You may expand on it with accurate scientific information where helpful.`,
		topic, subtopicInstruction, typeInstruction, contextStr)
}

func buildExamPredictorPrompt(req ExamPredictorRequest, topicsContext string) string {
	progress := "No learning progress data — new student."
	if len(req.Progress) > 0 {
		progress = mustJSON(req.Progress)
	}
	quizzes := "No quiz history yet."
	if len(req.QuizHistory) > 0 {
		quizzes = mustJSON(req.QuizHistory)
	}

	return fmt.Sprintf(`Analyze this student's learning data and predict their exam success probability.

**Learning Progress:**
%s

**Recent Quiz Performance:**
%s

**Available Curriculum Topics:**
%s

Return ONLY valid JSON with this exact structure:
{
  "overall_probability": 0.72,
  "confidence_level": "medium",
  "topic_predictions": [
    {
      "topic": "Topic Name",
      "probability": 0.85,
      "readiness": "strong",
      "risk_factors": ["specific risk"],
      "boost_actions": ["specific action to improve"]
    }
  ],
  "weak_areas": ["area1", "area2"],
  "strong_areas": ["area1", "area2"],
  "study_recommendations": [
    {
      "priority": 1,
      "action": "specific study action",
      "expected_impact": "high",
      "time_needed_minutes": 30
    }
  ],
  "score_estimate": {
    "low": 55,
    "expected": 72,
    "high": 85
  },
  "summary": "Brief overall assessment paragraph"
}`, progress, quizzes, topicsContext)
}

// diagramInstructions maps the requested diagram shape to concrete
// Mermaid guidance.
var diagramInstructions = map[string]string{
	"flowchart":  "Create a Mermaid flowchart (graph TD) showing the step-by-step process or pathway.",
	"mindmap":    "Create a Mermaid mindmap showing the main concept and its branches/sub-concepts.",
	"cycle":      "Create a Mermaid flowchart showing a cyclical process with arrows looping back.",
	"comparison": "Create a Mermaid flowchart with two parallel columns comparing two related concepts.",
	"hierarchy":  "Create a Mermaid flowchart (graph TD) showing the hierarchical classification or structure.",
}

func buildDiagramPrompt(req DiagramRequest, contextStr string) string {
	instruction, ok := diagramInstructions[req.DiagramType]
	if !ok {
		instruction = diagramInstructions["flowchart"]
	}

	return fmt.Sprintf(`Create a detailed Mermaid.js diagram about this biotechnology topic:

**Topic:** %s
**Diagram Type:** %s
**Instruction:** %s

**Curriculum Context:**
%s

Return ONLY valid JSON with this exact structure:
{
  "mermaid_code": "graph TD\n  A[Start] --> B[Step 1]\n  B --> C[Step 2]",
  "title": "Diagram Title",
  "description": "Brief explanation of what the diagram shows",
  "key_concepts": ["concept1", "concept2", "concept3"],
  "study_notes": "Additional notes to help understand the diagram"
}

IMPORTANT:
- The mermaid_code must be valid Mermaid.js syntax
- Use proper node IDs (single words or bracketed labels)
- Escape special characters in labels
- Keep node labels concise (max 6 words per node)
- Use subgraph for grouping related nodes when appropriate
- For mindmap type use: mindmap\n  root((Topic))\n    Branch1\n      Leaf1`,
		req.Topic, req.DiagramType, instruction, contextStr)
}

// mistakePromptLimit caps how many mistakes are serialized into one
// analyzer prompt.
const mistakePromptLimit = 30

func buildMistakeAnalyzerPrompt(req MistakeAnalyzerRequest) string {
	mistakes := req.Mistakes
	if len(mistakes) > mistakePromptLimit {
		mistakes = mistakes[:mistakePromptLimit]
	}
	serialized := "No mistake data available — the student hasn't taken any quizzes yet or got everything right!"
	if len(mistakes) > 0 {
		serialized = mustJSON(mistakes)
	}

	return fmt.Sprintf(`Analyze these quiz mistakes from a biotechnology student and identify patterns:

**Mistakes (%d wrong answers from recent quizzes):**
%s

Return ONLY valid JSON with this exact structure:
{
  "total_mistakes_analyzed": %d,
  "pattern_summary": "Overall summary of mistake patterns",
  "weak_topics": [
    {
      "topic": "Topic Name",
      "subtopic": "Subtopic",
      "mistake_count": 3,
      "common_error_type": "conceptual|factual|application|analysis",
      "explanation": "Why the student keeps getting this wrong",
      "fix_strategy": "Specific strategy to fix this"
    }
  ],
  "error_types": {
    "conceptual": 5,
    "factual": 3,
    "application": 2,
    "analysis": 1
  },
  "improvement_plan": [
    {
      "step": 1,
      "action": "specific action",
      "topic": "related topic",
      "estimated_time_minutes": 15,
      "expected_improvement": "what improvement to expect"
    }
  ],
  "encouragement": "A motivational message acknowledging their strengths"
}`, len(req.Mistakes), serialized, len(req.Mistakes))
}

func buildRevisionPrompt(req RevisionRequest, contextStr string) string {
	mastery := orDefault(req.Mastery, "unknown")

	return fmt.Sprintf(`Create a focused %d-minute revision session on this biotechnology topic.

**Topic:** %s
**Student Mastery Level:** %s
**Time Budget:** %d minutes

**Curriculum Context:**
%s

Return ONLY valid JSON with this exact structure:
{
  "topic": "%s",
  "duration_minutes": %d,
  "sections": [
    {
      "title": "Section title",
      "time_minutes": 1,
      "type": "key_facts|mnemonics|quick_quiz|summary|diagram_review",
      "content": "The actual revision content in markdown"
    }
  ],
  "flash_cards": [
    {
      "front": "Question or term",
      "back": "Answer or definition"
    }
  ],
  "quick_quiz": [
    {
      "question": "Quick question",
      "options": ["A) opt1", "B) opt2", "C) opt3", "D) opt4"],
      "correct": "A",
      "explanation": "Brief explanation"
    }
  ],
  "key_takeaways": ["takeaway1", "takeaway2", "takeaway3"],
  "mnemonics": ["mnemonic tip 1", "mnemonic tip 2"]
}`, req.DurationMinutes, req.Topic, mastery, req.DurationMinutes, contextStr, req.Topic, req.DurationMinutes)
}

func buildRoadmapPrompt(req RoadmapRequest, topicsContext string) string {
	progress := "New student — no progress data yet."
	if len(req.Progress) > 0 {
		progress = mustJSON(req.Progress)
	}
	quizzes := "No quiz history."
	if len(req.QuizHistory) > 0 {
		quizzes = mustJSON(req.QuizHistory)
	}

	return fmt.Sprintf(`Create a personalized %d-week study roadmap for a biotechnology student.

**Goal:** %s
**Duration:** %d weeks

**Current Progress:**
%s

**Quiz History:**
%s

**Available Curriculum:**
%s

Return ONLY valid JSON with this exact structure:
{
  "goal": "%s",
  "total_weeks": %d,
  "weekly_hours_recommended": 8,
  "roadmap_summary": "Brief overview of the study plan",
  "weeks": [
    {
      "week": 1,
      "theme": "Week theme",
      "topics": ["Topic 1", "Topic 2"],
      "daily_plan": [
        {
          "day": "Monday",
          "tasks": [
            {
              "type": "study|quiz|revision|practice",
              "topic": "Topic name",
              "description": "What to do",
              "duration_minutes": 45
            }
          ]
        }
      ],
      "milestone": "What you should know by end of this week",
      "quiz_goal": "Target quiz score for this week's topics"
    }
  ],
  "milestones": [
    {
      "week": 1,
      "description": "Milestone description",
      "achieved": false
    }
  ],
  "tips": ["study tip 1", "study tip 2"]
}`, req.Weeks, req.Goal, req.Weeks, progress, quizzes, topicsContext, req.Goal, req.Weeks)
}

func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
