package tutor

import "strings"

// DisclaimerMarker prefixes every degraded-response disclaimer so
// consuming UIs can detect reduced fidelity.
const DisclaimerMarker = "⚠️"

// Disclaimers appended to degraded responses.
const (
	rateLimitedDisclaimer = "\n\n---\n⚠️ *AI responses are temporarily limited due to API rate limits. You're seeing a pre-built answer. Please wait a minute and try again for a full AI response.*"
	serviceBusyDisclaimer = "\n\n---\n⚠️ *The AI service is temporarily busy due to rate limits. You're seeing a pre-built answer. Please wait a minute and try again!*"
	demoModeNote          = "\n\n*Note: Running in demo mode. Connect a Gemini API key for full AI-powered responses.*"
	structuredDisclaimer  = "⚠️ AI generation is temporarily unavailable. This is a pre-built response — please try again in a minute."
)

var greetingWords = []string{"hi", "hello", "hey", "good morning", "good evening", "sup", "what's up"}

// demoChatResponse builds a canned tutoring answer, reusing retrieved
// curriculum context when there is any.
func demoChatResponse(message, contextStr string) string {
	queryLower := strings.ToLower(message)

	for _, g := range greetingWords {
		if strings.Contains(queryLower, g) {
			return `Hey there! 👋 Welcome to BioMentor AI!

I'm your biotechnology tutor. Ask me anything — whether it's about CRISPR, DNA replication, fermentation, vaccines, or any biotech concept. I'm here to help you understand it clearly.

What would you like to learn about today?` + demoModeNote
		}
	}

	if contextStr != "" && contextStr != noContextSentinel {
		excerpt := contextStr
		if len(excerpt) > 1500 {
			excerpt = excerpt[:1500]
		}
		return demoIntro(queryLower) + `

Great question! Here's what I can tell you:

` + excerpt + `

---

💡 **Key Takeaway:** Understanding this concept is really important for connecting the dots in biotechnology. Feel free to ask follow-up questions!` + demoModeNote
	}

	return `That's an interesting question! 🧬

I don't have specific curriculum content on that exact topic right now, but here's what I can share:

Biotechnology covers a huge range of areas — from **molecular biology** (DNA, RNA, proteins) to **genetic engineering** (CRISPR, PCR), **bioinformatics**, **bioprocess engineering**, and **immunology**.

Could you rephrase your question or ask about a specific topic? For example:
- "How does CRISPR-Cas9 work?"
- "Explain PCR step by step"
- "What is mRNA vaccine technology?"

I'll give you a much better answer with a specific question! 😊` + demoModeNote
}

// demoIntroByKeyword maps query fragments to a report-style heading.
// Checked in a fixed order so repeated runs produce identical output.
var demoIntroKeys = []string{
	"dna", "rna", "protein", "crispr", "pcr", "gene", "enzyme", "vaccine",
	"ferment", "antibod", "clone", "sequenc", "immun", "car-t", "bioinformat",
}

var demoIntroHeadings = map[string]string{
	"dna":         "# 🧬 DNA — The Blueprint of Life",
	"rna":         "# 📝 RNA — The Messenger of Genetic Information",
	"protein":     "# 🔬 Protein — The Molecular Machines",
	"crispr":      "# ✂️ CRISPR-Cas9 — Revolutionary Gene Editing",
	"pcr":         "# 🔄 PCR — Amplifying DNA",
	"gene":        "# 🧪 Gene Expression & Regulation",
	"enzyme":      "# ⚡ Enzymes — Biological Catalysts",
	"vaccine":     "# 💉 Vaccine Technology",
	"ferment":     "# 🏭 Fermentation Technology",
	"antibod":     "# 🛡️ Antibodies & Immunology",
	"clone":       "# 📋 Molecular Cloning",
	"sequenc":     "# 📊 DNA Sequencing Technologies",
	"immun":       "# 🛡️ The Immune System",
	"car-t":       "# 🎯 CAR-T Cell Therapy",
	"bioinformat": "# 💻 Bioinformatics",
}

func demoIntro(queryLower string) string {
	for _, key := range demoIntroKeys {
		if strings.Contains(queryLower, key) {
			return demoIntroHeadings[key]
		}
	}
	return "# 📚 Biotechnology Concepts"
}

// demoQuiz returns up to count canned questions spanning difficulty
// levels, all tagged with the requested topic.
func demoQuiz(topic string, count int) Quiz {
	questions := []Question{
		{
			ID:            1,
			Question:      "Which enzyme is responsible for unwinding the DNA double helix during replication?",
			Type:          "multiple_choice",
			Options:       []string{"A) DNA Polymerase III", "B) Helicase", "C) Ligase", "D) Primase"},
			CorrectAnswer: "B",
			Explanation:   "Helicase unwinds the double helix by breaking hydrogen bonds between complementary base pairs. DNA Polymerase III adds nucleotides, Ligase joins Okazaki fragments, and Primase synthesizes RNA primers.",
			Difficulty:    "easy",
			Topic:         topic,
			Subtopic:      "DNA Replication",
			BloomLevel:    "remember",
		},
		{
			ID:       2,
			Question: "In CRISPR-Cas9 gene editing, what is the primary role of the guide RNA (sgRNA)?",
			Type:     "multiple_choice",
			Options: []string{
				"A) To cut the target DNA sequence",
				"B) To direct Cas9 to the specific target site in the genome",
				"C) To repair the double-strand break after cutting",
				"D) To amplify the target gene for editing",
			},
			CorrectAnswer: "B",
			Explanation:   "The single guide RNA (sgRNA) contains a 20-nucleotide sequence complementary to the target DNA, directing the Cas9 nuclease to the specific genomic location. Cas9 itself performs the cutting, DNA repair mechanisms handle repair, and amplification is not part of CRISPR editing.",
			Difficulty:    "medium",
			Topic:         topic,
			Subtopic:      "CRISPR-Cas9",
			BloomLevel:    "understand",
		},
		{
			ID:       3,
			Question: "A pharmaceutical company wants to produce a human monoclonal antibody that requires complex glycosylation for therapeutic efficacy. Which expression system would be most appropriate?",
			Type:     "multiple_choice",
			Options: []string{
				"A) E. coli expression system",
				"B) Cell-free protein synthesis",
				"C) Chinese Hamster Ovary (CHO) cells",
				"D) Bacteriophage display system",
			},
			CorrectAnswer: "C",
			Explanation:   "CHO cells are the preferred expression system for therapeutic monoclonal antibodies because they perform human-like post-translational modifications including complex glycosylation. E. coli lacks glycosylation machinery, cell-free systems have limited modification capability, and phage display is for antibody discovery, not production.",
			Difficulty:    "hard",
			Topic:         topic,
			Subtopic:      "Recombinant DNA Technology",
			BloomLevel:    "apply",
		},
		{
			ID:       4,
			Question: "During mRNA processing in eukaryotes, which modification is NOT typically added to the pre-mRNA?",
			Type:     "multiple_choice",
			Options: []string{
				"A) 5' methylguanosine cap",
				"B) 3' poly-A tail",
				"C) Removal of introns by splicing",
				"D) Addition of a Shine-Dalgarno sequence",
			},
			CorrectAnswer: "D",
			Explanation:   "The Shine-Dalgarno sequence is a ribosome-binding sequence found in prokaryotic mRNA, not eukaryotic. Eukaryotic mRNA processing includes 5' capping (7-methylguanosine), 3' polyadenylation (poly-A tail), and intron removal via splicing by the spliceosome.",
			Difficulty:    "medium",
			Topic:         topic,
			Subtopic:      "RNA Processing",
			BloomLevel:    "analyze",
		},
		{
			ID:       5,
			Question: "In fed-batch fermentation for recombinant protein production, what is the primary advantage of controlling nutrient feeding rate?",
			Type:     "multiple_choice",
			Options: []string{
				"A) It eliminates the need for sterile conditions",
				"B) It prevents substrate inhibition and catabolite repression while achieving high cell densities",
				"C) It allows continuous product harvesting during fermentation",
				"D) It reduces the need for downstream processing",
			},
			CorrectAnswer: "B",
			Explanation:   "Fed-batch fermentation controls nutrient addition to avoid substrate inhibition (excess glucose can inhibit growth or cause overflow metabolism like acetate production in E. coli) and catabolite repression, while enabling much higher cell densities (>100 g/L) than batch fermentation. This is the most common mode for recombinant protein production.",
			Difficulty:    "hard",
			Topic:         topic,
			Subtopic:      "Fermentation Technology",
			BloomLevel:    "understand",
		},
	}

	if count > 0 && count < len(questions) {
		questions = questions[:count]
	}
	return Quiz{Questions: questions, Disclaimer: structuredDisclaimer}
}

func demoLearningPath() LearningPath {
	return LearningPath{
		Assessment: "Based on your performance data, you have a solid foundation in molecular biology fundamentals with room for growth in genetic engineering and bioinformatics.",
		Strengths: []string{
			"DNA Structure and Replication",
			"Basic Gene Expression",
			"PCR and DNA Amplification",
		},
		Weaknesses: []string{
			"CRISPR-Cas9 applications and mechanism details",
			"Bioinformatics tools and sequence analysis",
			"Bioprocess engineering calculations",
		},
		Recommendations: []Recommendation{
			{
				Priority:             1,
				Topic:                "Genetic Engineering",
				Action:               "review",
				Reason:               "Quiz scores indicate gaps in CRISPR mechanism understanding. Strengthening this foundation is critical for advanced topics.",
				EstimatedTimeMinutes: 45,
				Resources:            []string{"CRISPR-Cas9 Gene Editing", "Gene Therapy Approaches"},
			},
			{
				Priority:             2,
				Topic:                "Bioinformatics and Computational Biology",
				Action:               "study",
				Reason:               "Limited engagement with computational topics. Bioinformatics skills are essential for modern biotechnology.",
				EstimatedTimeMinutes: 60,
				Resources:            []string{"Sequence Alignment and Analysis", "Genomics and Genome Assembly"},
			},
			{
				Priority:             3,
				Topic:                "Bioprocess Engineering",
				Action:               "practice",
				Reason:               "Need more practice with fermentation kinetics and downstream processing concepts.",
				EstimatedTimeMinutes: 30,
				Resources:            []string{"Fermentation Technology", "Downstream Processing and Purification"},
			},
			{
				Priority:             4,
				Topic:                "Immunology and Vaccine Technology",
				Action:               "advance",
				Reason:               "Strong foundation enables progression to advanced immunology topics including CAR-T therapy.",
				EstimatedTimeMinutes: 45,
				Resources:            []string{"Modern Vaccine Platforms", "CAR-T Cell Therapy"},
			},
		},
		NextMilestone:   "Complete the Genetic Engineering module with >80% quiz score to unlock advanced gene therapy topics.",
		OverallProgress: 0.45,
		Disclaimer:      structuredDisclaimer,
	}
}

func demoStudyReport(topic, subtopic string) StudyReport {
	focus := ""
	if subtopic != "" {
		focus = " — " + subtopic
	}
	report := `## 📚 Study Report: ` + topic + focus + `

### 🎯 Learning Objectives
- Understand the core concepts of ` + topic + `
- Learn key terminology and definitions
- Explore real-world applications in biotechnology

### 📖 Core Concepts

` + topic + ` is an important area in biotechnology that covers fundamental principles essential for modern biotech applications.

Key areas include:
- **Foundational theory** — the underlying science behind ` + topic + `
- **Laboratory techniques** — practical methods used in this field
- **Industry applications** — how these concepts are applied in pharma, agriculture, and research

### 🔬 Key Terms
| Term | Definition |
|------|-----------|
| Biotechnology | The use of biological systems to develop products and technologies |
| ` + topic + ` | A key area of study within biotechnology curriculum |

### ⚡ Quick Revision Points
- ` + topic + ` is fundamental to understanding modern biotechnology
- Key techniques and methods are widely used in industry
- Understanding this topic helps connect other areas of biotech

### ❓ Practice Questions
1. What are the main principles of ` + topic + `?
2. How is ` + topic + ` applied in modern biotechnology?
3. Compare and contrast the key methods used in ` + topic + `.

---
*⚠️ AI service is temporarily limited. Please try again for a full AI-powered study report.*`

	return StudyReport{
		Report:     report,
		Topic:      topic,
		Subtopic:   subtopic,
		ReportType: "summary",
		ModelUsed:  "demo",
	}
}

// Feature tags for the advanced features, used both for prompt routing
// and for demo response lookup.
const (
	FeatureExamPredictor   = "exam_predictor"
	FeatureDiagramCreator  = "diagram_creator"
	FeatureMistakeAnalyzer = "mistake_analyzer"
	FeatureRevisionMode    = "revision_mode"
	FeatureStudyRoadmap    = "study_roadmap"
)

// demoFeature returns the canned payload for an advanced feature.
func demoFeature(feature string) FeatureResult {
	switch feature {
	case FeatureExamPredictor:
		return FeatureResult{
			"overall_probability": 0.68,
			"confidence_level":    "medium",
			"topic_predictions": []any{
				map[string]any{
					"topic": "Molecular Biology", "probability": 0.80, "readiness": "strong",
					"risk_factors":  []any{"Limited practice on advanced mechanisms"},
					"boost_actions": []any{"Review DNA replication enzymes", "Practice mRNA processing questions"},
				},
				map[string]any{
					"topic": "Genetic Engineering", "probability": 0.65, "readiness": "moderate",
					"risk_factors":  []any{"CRISPR mechanism details need reinforcement"},
					"boost_actions": []any{"Study CRISPR-Cas9 step by step", "Take 2 more quizzes"},
				},
				map[string]any{
					"topic": "Bioprocess Engineering", "probability": 0.55, "readiness": "developing",
					"risk_factors":  []any{"Fermentation kinetics concepts are weak"},
					"boost_actions": []any{"Review fed-batch vs continuous fermentation", "Practice calculations"},
				},
			},
			"weak_areas":   []any{"Bioprocess Engineering", "Bioinformatics"},
			"strong_areas": []any{"Molecular Biology", "Basic Genetics"},
			"study_recommendations": []any{
				map[string]any{"priority": 1, "action": "Deep review of CRISPR-Cas9 mechanism and applications", "expected_impact": "high", "time_needed_minutes": 45},
				map[string]any{"priority": 2, "action": "Practice fermentation kinetics problems", "expected_impact": "medium", "time_needed_minutes": 30},
				map[string]any{"priority": 3, "action": "Take practice quiz on Bioinformatics tools", "expected_impact": "medium", "time_needed_minutes": 20},
			},
			"score_estimate": map[string]any{"low": 52, "expected": 68, "high": 82},
			"summary":        "You have a solid foundation in molecular biology but need more work on genetic engineering details and bioprocess engineering. Focused study on CRISPR and fermentation kinetics could push your expected score above 75%.",
			"disclaimer":     structuredDisclaimer,
		}
	case FeatureDiagramCreator:
		return FeatureResult{
			"mermaid_code": "graph TD\n  A[DNA] -->|Transcription| B[mRNA]\n  B -->|Processing| C[Mature mRNA]\n  C -->|Translation| D[Protein]\n  D -->|Folding| E[Functional Protein]\n  E -->|Post-translational| F[Modified Protein]",
			"title":        "Gene Expression Pathway",
			"description":  "This diagram shows the central dogma of molecular biology — the flow of genetic information from DNA to functional protein.",
			"key_concepts": []any{"Transcription", "Translation", "Post-translational modification"},
			"study_notes":  "Remember: DNA → RNA → Protein. Each step involves specific enzymes and regulatory mechanisms.",
			"disclaimer":   structuredDisclaimer,
		}
	case FeatureMistakeAnalyzer:
		return FeatureResult{
			"total_mistakes_analyzed": 0,
			"pattern_summary":         "Take some quizzes first to get a detailed mistake analysis! Your mistakes will be analyzed to identify patterns and help you improve.",
			"weak_topics":             []any{},
			"error_types":             map[string]any{"conceptual": 0, "factual": 0, "application": 0, "analysis": 0},
			"improvement_plan": []any{
				map[string]any{
					"step": 1, "action": "Take quizzes on different topics to build a performance baseline",
					"topic": "All Topics", "estimated_time_minutes": 30,
					"expected_improvement": "Establish baseline for targeted improvement",
				},
			},
			"encouragement": "Every expert was once a beginner! Start taking quizzes and I'll help you pinpoint exactly what to focus on. 🧬",
			"disclaimer":    structuredDisclaimer,
		}
	case FeatureRevisionMode:
		return FeatureResult{
			"topic":            "Biotechnology",
			"duration_minutes": 5,
			"sections": []any{
				map[string]any{
					"title": "Core Concept Recap", "time_minutes": 2, "type": "key_facts",
					"content": "**Key Facts:**\n- Biotechnology uses living organisms to create products\n- Key areas: genetic engineering, bioprocess, immunology\n- Central dogma: DNA → RNA → Protein",
				},
				map[string]any{
					"title": "Memory Triggers", "time_minutes": 1, "type": "mnemonics",
					"content": "**Mnemonics:**\n- **CRISPR** = *Clustered Regularly Interspaced Short Palindromic Repeats*\n- **PCR steps**: *D*enature, *A*nneal, *E*xtend (DAE!)",
				},
				map[string]any{
					"title": "Quick Check", "time_minutes": 2, "type": "quick_quiz",
					"content": "Test yourself on the flash cards below!",
				},
			},
			"flash_cards": []any{
				map[string]any{"front": "What enzyme unwinds DNA during replication?", "back": "Helicase"},
				map[string]any{"front": "What does PCR stand for?", "back": "Polymerase Chain Reaction"},
				map[string]any{"front": "What is the role of guide RNA in CRISPR?", "back": "Directs Cas9 to the target DNA sequence"},
			},
			"quick_quiz": []any{
				map[string]any{
					"question": "Which enzyme adds nucleotides during DNA replication?",
					"options":  []any{"A) Helicase", "B) DNA Polymerase", "C) Ligase", "D) Primase"},
					"correct":  "B", "explanation": "DNA Polymerase III adds nucleotides to the growing strand.",
				},
			},
			"key_takeaways": []any{"DNA replication is semi-conservative", "CRISPR uses guide RNA for targeting", "PCR amplifies DNA exponentially"},
			"mnemonics":     []any{"DAE for PCR: Denature, Anneal, Extend", "Helicase = Helix-breaker"},
			"disclaimer":    structuredDisclaimer,
		}
	case FeatureStudyRoadmap:
		return FeatureResult{
			"goal":                     "exam_ready",
			"total_weeks":              4,
			"weekly_hours_recommended": 8,
			"roadmap_summary":          "A structured 4-week plan covering all major biotechnology topics, progressing from fundamentals to advanced applications.",
			"weeks": []any{
				map[string]any{
					"week": 1, "theme": "Molecular Biology Foundations",
					"topics": []any{"DNA Structure & Replication", "Gene Expression"},
					"daily_plan": []any{
						map[string]any{"day": "Monday", "tasks": []any{map[string]any{"type": "study", "topic": "DNA Structure", "description": "Read and understand DNA double helix, base pairing, and chromosomal organization", "duration_minutes": 45}}},
						map[string]any{"day": "Wednesday", "tasks": []any{map[string]any{"type": "quiz", "topic": "DNA Replication", "description": "Take a practice quiz on replication enzymes and mechanisms", "duration_minutes": 30}}},
						map[string]any{"day": "Friday", "tasks": []any{map[string]any{"type": "revision", "topic": "Gene Expression", "description": "5-minute revision of transcription and translation", "duration_minutes": 30}}},
					},
					"milestone": "Understand central dogma and DNA replication mechanics",
					"quiz_goal": "Score ≥ 70% on Molecular Biology quiz",
				},
				map[string]any{
					"week": 2, "theme": "Genetic Engineering & Tools",
					"topics": []any{"CRISPR-Cas9", "PCR", "Cloning"},
					"daily_plan": []any{
						map[string]any{"day": "Monday", "tasks": []any{map[string]any{"type": "study", "topic": "CRISPR-Cas9", "description": "Learn the CRISPR mechanism, guide RNA design, and applications", "duration_minutes": 50}}},
						map[string]any{"day": "Wednesday", "tasks": []any{map[string]any{"type": "practice", "topic": "PCR", "description": "Study PCR steps and practice related problems", "duration_minutes": 40}}},
						map[string]any{"day": "Friday", "tasks": []any{map[string]any{"type": "quiz", "topic": "Genetic Engineering", "description": "Comprehensive quiz on cloning vectors and techniques", "duration_minutes": 30}}},
					},
					"milestone": "Explain CRISPR mechanism and design a basic PCR experiment",
					"quiz_goal": "Score ≥ 75% on Genetic Engineering quiz",
				},
			},
			"milestones": []any{
				map[string]any{"week": 1, "description": "Complete Molecular Biology fundamentals", "achieved": false},
				map[string]any{"week": 2, "description": "Master Genetic Engineering tools", "achieved": false},
				map[string]any{"week": 3, "description": "Understand Bioprocess Engineering", "achieved": false},
				map[string]any{"week": 4, "description": "Exam-ready across all topics", "achieved": false},
			},
			"tips": []any{
				"Use the 5-Minute Revision mode daily for spaced repetition",
				"Take a quiz after each study session to reinforce learning",
				"Focus extra time on topics flagged by the Mistake Analyzer",
				"Create diagrams to visualize complex pathways",
			},
			"disclaimer": structuredDisclaimer,
		}
	default:
		return FeatureResult{"error": "Feature not available in demo mode", "disclaimer": structuredDisclaimer}
	}
}
