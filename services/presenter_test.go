package services_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"fake-news-detector/models"
	"fake-news-detector/services"
)

func TestPresent_VerdictAndProbabilities(t *testing.T) {
	p := services.Present(*sampleResult())

	wantVerdict := services.VerdictGroup{
		Verdict:           models.VerdictFake,
		Headline:          "FAKE NEWS",
		Severity:          services.SeverityAlert,
		ConfidencePercent: 93,
		ConfidenceText:    "93.00",
		ConfidenceLabel:   "93.0%",
	}
	if diff := cmp.Diff(wantVerdict, p.Verdict, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("verdict group mismatch (-want +got):\n%s", diff)
	}
	if p.Probabilities.Fake.Text != "93.00" || p.Probabilities.Real.Text != "7.00" {
		t.Errorf("probability texts = %q / %q, want 93.00 / 7.00", p.Probabilities.Fake.Text, p.Probabilities.Real.Text)
	}
	if p.ModelName != "BERT" {
		t.Errorf("ModelName = %q", p.ModelName)
	}
}

func TestPresent_RealVerdictIsSafe(t *testing.T) {
	r := sampleResult()
	r.Verdict = models.VerdictReal
	if got := services.Present(*r).Verdict; got.Severity != services.SeveritySafe || got.Headline != "REAL NEWS" {
		t.Errorf("verdict group = %+v, want safe REAL NEWS", got)
	}
}

func TestPresent_ProbabilitiesIndependent(t *testing.T) {
	r := sampleResult()
	r.Probabilities = models.Probabilities{Fake: 0.5, Real: 0.7}
	p := services.Present(*r)
	if p.Probabilities.Fake.Text != "50.00" || p.Probabilities.Real.Text != "70.00" {
		t.Errorf("bars re-normalised: %q / %q", p.Probabilities.Fake.Text, p.Probabilities.Real.Text)
	}
}

func TestPresent_Features(t *testing.T) {
	cases := []struct {
		words int
		pass  bool
	}{
		{45, true},
		{31, true},
		{30, false},
		{12, false},
	}
	for _, tc := range cases {
		r := sampleResult()
		r.Features.WordCount = tc.words
		p := services.Present(*r)

		var wc *services.FeatureCheck
		for i := range p.Features {
			if p.Features[i].Name == "Word Count" {
				wc = &p.Features[i]
			}
		}
		if wc == nil {
			t.Fatal("Word Count check missing")
		}
		if wc.Passed != tc.pass {
			t.Errorf("wordCount %d: passed = %v, want %v", tc.words, wc.Passed, tc.pass)
		}
	}

	p := services.Present(*sampleResult())
	want := []services.FeatureCheck{
		{Name: "Quotations", Passed: true, Detail: "✓ Present"},
		{Name: "Attribution", Passed: false, Detail: "✗ Missing"},
		{Name: "Dates/Timeline", Passed: false, Detail: "✗ Missing"},
		{Name: "Word Count", Passed: true, Detail: "45 words"},
	}
	if diff := cmp.Diff(want, p.Features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestPresent_Indicators(t *testing.T) {
	r := sampleResult()
	r.Indicators = []models.Indicator{{Type: "sensational", Count: 3}, {Type: "vague sourcing", Count: 1}}
	want := &services.IndicatorGroup{Entries: []services.IndicatorEntry{
		{Type: "sensational", Count: 3, Label: "Sensational Language", Detail: "3 instance(s)"},
		{Type: "vague sourcing", Count: 1, Label: "Vague Sourcing Language", Detail: "1 instance(s)"},
	}}
	if diff := cmp.Diff(want, services.Present(*r).Indicators); diff != "" {
		t.Errorf("indicators mismatch (-want +got):\n%s", diff)
	}

	r.Indicators = nil
	if g := services.Present(*r).Indicators; g != nil {
		t.Errorf("indicator group = %+v, want nil for no indicators", g)
	}
	r.Indicators = []models.Indicator{}
	if g := services.Present(*r).Indicators; g != nil {
		t.Errorf("indicator group = %+v, want nil for empty indicators", g)
	}
}

func TestPresent_Heatmap(t *testing.T) {
	r := sampleResult()
	r.AttentionScores = []models.AttentionScore{
		{Word: "a", Score: 0.85},
		{Word: "b", Score: 0.7},
		{Word: "c", Score: 0.5},
		{Word: "d", Score: 0.1},
	}
	want := []services.HeatToken{
		{Word: "a", Score: 0.85, Band: models.BandCritical, Inverted: true, Tooltip: "Attention: 0.85"},
		{Word: "b", Score: 0.7, Band: models.BandHigh, Inverted: true, Tooltip: "Attention: 0.70"},
		{Word: "c", Score: 0.5, Band: models.BandMedium, Inverted: false, Tooltip: "Attention: 0.50"},
		{Word: "d", Score: 0.1, Band: models.BandLow, Inverted: false, Tooltip: "Attention: 0.10"},
	}
	if diff := cmp.Diff(want, services.Present(*r).Heatmap); diff != "" {
		t.Errorf("heatmap mismatch (-want +got):\n%s", diff)
	}
}

func TestPresent_DoesNotMutate(t *testing.T) {
	r := sampleResult()
	before := r.Clone()
	services.Present(*r)
	if diff := cmp.Diff(before, r); diff != "" {
		t.Errorf("Present modified its input (-before +after):\n%s", diff)
	}
}

func TestFormatText(t *testing.T) {
	out := services.FormatText(services.Present(*sampleResult()))
	for _, s := range []string{"🔴 FAKE NEWS", "93.0%", "93.00%", "7.00%", "Quotations", "45 words", "Sensational Language", "SHOCKING!!"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
