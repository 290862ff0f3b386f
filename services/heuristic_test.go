package services_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fake-news-detector/models"
	"fake-news-detector/services"
)

func mustExample(t *testing.T, label string) services.Example {
	t.Helper()
	ex, ok := services.FindExample(label)
	if !ok {
		t.Fatalf("example %q not found", label)
	}
	return ex
}

func TestHeuristic_RealExample(t *testing.T) {
	c := services.NewHeuristicClassifier()
	res, err := c.Classify(context.Background(), models.ClassificationRequest{Text: mustExample(t, "real").Text, Model: models.ModelBERT})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Verdict != models.VerdictReal || res.Confidence != 0.9 {
		t.Errorf("verdict = %s (%.2f), want REAL (0.90)", res.Verdict, res.Confidence)
	}
	want := models.Features{HasAttribution: true, WordCount: 36}
	if diff := cmp.Diff(want, res.Features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
	if len(res.Indicators) != 0 {
		t.Errorf("indicators = %v, want none", res.Indicators)
	}
}

func TestHeuristic_FakeExample(t *testing.T) {
	c := services.NewHeuristicClassifier()
	res, err := c.Classify(context.Background(), models.ClassificationRequest{Text: mustExample(t, "fake").Text, Model: models.ModelLSTM})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Verdict != models.VerdictFake || res.Confidence != 0.97 {
		t.Errorf("verdict = %s (%.2f), want FAKE (0.97)", res.Verdict, res.Confidence)
	}
	if res.Probabilities.Real != 0.03 {
		t.Errorf("real probability = %v, want 0.03", res.Probabilities.Real)
	}
	wantIndicators := []models.Indicator{
		{Type: "sensational", Count: 3},
		{Type: "vague sourcing", Count: 2},
		{Type: "conspiracy", Count: 1},
		{Type: "emotional", Count: 2},
	}
	if diff := cmp.Diff(wantIndicators, res.Indicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}
	if len(res.AttentionScores) != res.Features.WordCount {
		t.Errorf("%d attention scores for %d words", len(res.AttentionScores), res.Features.WordCount)
	}
	if first := res.AttentionScores[0]; first.Word != "BREAKING:" || services.Band(first.Score) != models.BandCritical {
		t.Errorf("first token = %+v, want critical BREAKING:", first)
	}
}

// Both examples go through a full session many times and must always land
// on the same verdict.
func TestExamples_RoundTripDeterministic(t *testing.T) {
	cases := map[string]models.Verdict{"real": models.VerdictReal, "fake": models.VerdictFake}
	for label, want := range cases {
		t.Run(label, func(t *testing.T) {
			c := services.NewSessionController(services.NewHeuristicClassifier())
			c.SetInputText(mustExample(t, label).Text)

			var first *models.ClassificationResult
			for i := 0; i < 20; i++ {
				if err := c.Submit(context.Background()); err != nil {
					t.Fatalf("run %d: %v", i, err)
				}
				got := c.State().Result
				if got.Verdict != want {
					t.Fatalf("run %d: verdict %s, want %s", i, got.Verdict, want)
				}
				if first == nil {
					first = got
				} else if diff := cmp.Diff(first, got); diff != "" {
					t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
				}
			}
		})
	}
}

func TestHeuristic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := services.NewHeuristicClassifier().Classify(ctx, models.ClassificationRequest{Text: "news", Model: models.ModelBERT})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestFindExample(t *testing.T) {
	for _, label := range []string{"real", "Real News", " REAL "} {
		if ex, ok := services.FindExample(label); !ok || ex.Label != "Real News" {
			t.Errorf("FindExample(%q) = %q, %v", label, ex.Label, ok)
		}
	}
	if _, ok := services.FindExample("satire"); ok {
		t.Error("FindExample(satire) should not match")
	}
	if _, ok := services.FindExample(""); ok {
		t.Error("FindExample(\"\") should not match")
	}
}
