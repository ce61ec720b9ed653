package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/biomentor-ai/biomentor/internal/log"
)

func testDocs() []Chunk {
	return []Chunk{
		{
			Content: "**Helicase** is the enzyme that unwinds the DNA double helix at the replication fork.\n\n**DNA polymerase** synthesizes new strands in the 5' to 3' direction, proofreading as it goes.",
			Metadata: Metadata{
				TopicID:    "mol_bio_101",
				TopicName:  "Molecular Biology Fundamentals",
				Subtopic:   "DNA Replication",
				Difficulty: "beginner",
				Source:     "BioMentor AI Curriculum",
			},
		},
		{
			Content: "CRISPR-Cas9 uses a guide RNA to direct the Cas9 nuclease for precise genome editing.",
			Metadata: Metadata{
				TopicID:    "gen_eng_201",
				TopicName:  "Genetic Engineering",
				Subtopic:   "CRISPR-Cas9",
				Difficulty: "advanced",
				Source:     "BioMentor AI Curriculum",
			},
		},
	}
}

func TestNewKeywordSplitsIntoParagraphs(t *testing.T) {
	t.Parallel()

	svc := NewKeyword(testDocs(), WithLogger(log.NewNop()))
	if svc.Strategy() != StrategyKeyword {
		t.Fatalf("Strategy() = %q, want %q", svc.Strategy(), StrategyKeyword)
	}

	// The two-paragraph document yields distinct chunks with their own
	// chunk indexes; a polymerase query should hit the second paragraph.
	hits, err := svc.Retrieve(context.Background(), "polymerase proofreading")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("Retrieve() returned no hits")
	}
	if !strings.Contains(hits[0].Content, "polymerase") {
		t.Errorf("top hit %q does not contain the queried paragraph", hits[0].Content)
	}
	if hits[0].Metadata.ChunkIndex != 1 {
		t.Errorf("top hit chunk index = %d, want 1", hits[0].Metadata.ChunkIndex)
	}
}

func TestServiceRetrieveDefaultTopK(t *testing.T) {
	t.Parallel()

	// Many documents matching the same term; the default cap must apply.
	var docs []Chunk
	for range 10 {
		docs = append(docs, Chunk{
			Content:  "Fermentation converts sugars using engineered microbes.",
			Metadata: Metadata{TopicID: "ind_bio_601", TopicName: "Industrial Biotechnology", Subtopic: "Fermentation"},
		})
	}

	svc := NewKeyword(docs, WithLogger(log.NewNop()), WithDefaultTopK(3))
	hits, err := svc.Retrieve(context.Background(), "fermentation microbes")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("Retrieve() returned %d hits, want default cap of 3", len(hits))
	}

	hits, err = svc.Retrieve(context.Background(), "fermentation microbes", WithTopK(5))
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(hits) != 5 {
		t.Errorf("Retrieve(WithTopK(5)) returned %d hits, want 5", len(hits))
	}
}

func TestServiceRetrieveTopicOption(t *testing.T) {
	t.Parallel()

	svc := NewKeyword(testDocs(), WithLogger(log.NewNop()))
	hits, err := svc.Retrieve(context.Background(), "genome editing", WithTopic("gen_eng_201"))
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("Retrieve() returned no hits within topic")
	}
	for _, h := range hits {
		if h.Metadata.TopicID != "gen_eng_201" {
			t.Errorf("hit from topic %q, want only gen_eng_201", h.Metadata.TopicID)
		}
	}
}

func TestServiceContextString(t *testing.T) {
	t.Parallel()

	svc := NewKeyword(testDocs(), WithLogger(log.NewNop()))

	got := svc.ContextString(context.Background(), "helicase enzyme")
	if !strings.Contains(got, "[Source 1: Molecular Biology Fundamentals — DNA Replication]") {
		t.Errorf("ContextString() missing source header:\n%s", got)
	}
	if !strings.Contains(got, "Helicase") {
		t.Errorf("ContextString() missing retrieved content:\n%s", got)
	}

	if got := svc.ContextString(context.Background(), "ribosome"); got != NoContextSentinel {
		t.Errorf("ContextString(no matches) = %q, want sentinel", got)
	}
}

// failingEmbed simulates an embedder outage.
func failingEmbed(context.Context, string) ([]float32, error) {
	return nil, context.DeadlineExceeded
}

func TestVectorIndexFallsBackOnEmbedFailure(t *testing.T) {
	t.Parallel()

	fallback := newKeywordIndex([]Chunk{
		{
			Content:  "Helicase is the enzyme that unwinds DNA.",
			Metadata: Metadata{TopicID: "mol_bio_101", TopicName: "Molecular Biology Fundamentals", Subtopic: "DNA Replication"},
		},
	})
	idx := newVectorIndex(nil, failingEmbed, fallback, log.NewNop())

	hits, err := idx.Retrieve(context.Background(), "helicase enzyme", searchConfig{topK: 5})
	if err != nil {
		t.Fatalf("Retrieve() error = %v, want keyword fallback to absorb the failure", err)
	}
	if len(hits) != 1 {
		t.Fatalf("Retrieve() returned %d hits, want 1 from the keyword fallback", len(hits))
	}
	if hits[0].Metadata.Subtopic != "DNA Replication" {
		t.Errorf("fallback hit subtopic = %q, want %q", hits[0].Metadata.Subtopic, "DNA Replication")
	}
}

func TestClamp01(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.3, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
