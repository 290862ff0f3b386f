package services

import (
	"fmt"
	"strings"
	"unicode"

	"fake-news-detector/models"
)

// WordCountThreshold is the minimum word count (exclusive) for the length
// check to pass.
const WordCountThreshold = 30

type Severity string

const (
	SeverityAlert Severity = "alert"
	SeveritySafe  Severity = "safe"
)

type VerdictGroup struct {
	Verdict           models.Verdict `json:"verdict"`
	Headline          string         `json:"headline"`
	Severity          Severity       `json:"severity"`
	ConfidencePercent float64        `json:"confidence_percent"`
	ConfidenceText    string         `json:"confidence_text"`  // two decimals, no sign
	ConfidenceLabel   string         `json:"confidence_label"` // "93.0%"
}

type ProbabilityBar struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Text    string  `json:"text"`
	Width   float64 `json:"width"` // Percent clamped to [0,100]
}

type ProbabilityGroup struct {
	Fake ProbabilityBar `json:"fake"`
	Real ProbabilityBar `json:"real"`
}

type FeatureCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type IndicatorEntry struct {
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

type IndicatorGroup struct {
	Entries []IndicatorEntry `json:"entries"`
}

type HeatToken struct {
	Word     string      `json:"word"`
	Score    float64     `json:"score"`
	Band     models.Band `json:"band"`
	Inverted bool        `json:"inverted"`
	Tooltip  string      `json:"tooltip"`
}

// Presentation is everything a rendering layer needs to show one result.
// Indicators is nil when the classifier flagged nothing.
type Presentation struct {
	ModelUsed     models.ModelID   `json:"model_used"`
	ModelName     string           `json:"model_name"`
	Verdict       VerdictGroup     `json:"verdict"`
	Probabilities ProbabilityGroup `json:"probabilities"`
	Features      []FeatureCheck   `json:"features"`
	Indicators    *IndicatorGroup  `json:"indicators,omitempty"`
	Heatmap       []HeatToken      `json:"heatmap"`
}

// Present turns a result into renderable groups. It does not modify r.
func Present(r models.ClassificationResult) Presentation {
	return Presentation{
		ModelUsed:     r.ModelUsed,
		ModelName:     DisplayName(r.ModelUsed),
		Verdict:       presentVerdict(r.Verdict, r.Confidence),
		Probabilities: presentProbabilities(r.Probabilities),
		Features:      presentFeatures(r.Features),
		Indicators:    presentIndicators(r.Indicators),
		Heatmap:       presentHeatmap(r.AttentionScores),
	}
}

func presentVerdict(v models.Verdict, confidence float64) VerdictGroup {
	severity := SeveritySafe
	if v == models.VerdictFake {
		severity = SeverityAlert
	}
	pct := confidence * 100
	return VerdictGroup{
		Verdict:           v,
		Headline:          string(v) + " NEWS",
		Severity:          severity,
		ConfidencePercent: pct,
		ConfidenceText:    fmt.Sprintf("%.2f", pct),
		ConfidenceLabel:   fmt.Sprintf("%.1f%%", pct),
	}
}

func presentProbabilities(p models.Probabilities) ProbabilityGroup {
	return ProbabilityGroup{
		Fake: probabilityBar("Fake Probability", p.Fake),
		Real: probabilityBar("Real Probability", p.Real),
	}
}

func probabilityBar(label string, p float64) ProbabilityBar {
	pct := p * 100
	width := pct
	switch {
	case width < 0:
		width = 0
	case width > 100:
		width = 100
	}
	return ProbabilityBar{Label: label, Percent: pct, Text: fmt.Sprintf("%.2f", pct), Width: width}
}

func presentFeatures(f models.Features) []FeatureCheck {
	presence := func(name string, ok bool) FeatureCheck {
		detail := "✗ Missing"
		if ok {
			detail = "✓ Present"
		}
		return FeatureCheck{Name: name, Passed: ok, Detail: detail}
	}
	return []FeatureCheck{
		presence("Quotations", f.HasQuotes),
		presence("Attribution", f.HasAttribution),
		presence("Dates/Timeline", f.HasDates),
		{
			Name:   "Word Count",
			Passed: f.WordCount > WordCountThreshold,
			Detail: fmt.Sprintf("%d words", f.WordCount),
		},
	}
}

func presentIndicators(list []models.Indicator) *IndicatorGroup {
	if len(list) == 0 {
		return nil
	}
	g := &IndicatorGroup{Entries: make([]IndicatorEntry, 0, len(list))}
	for _, ind := range list {
		g.Entries = append(g.Entries, IndicatorEntry{
			Type:   ind.Type,
			Count:  ind.Count,
			Label:  titleCase(ind.Type) + " Language",
			Detail: fmt.Sprintf("%d instance(s)", ind.Count),
		})
	}
	return g
}

func presentHeatmap(scores []models.AttentionScore) []HeatToken {
	tokens := make([]HeatToken, 0, len(scores))
	for _, s := range scores {
		band := Band(s.Score)
		tokens = append(tokens, HeatToken{
			Word:     s.Word,
			Score:    s.Score,
			Band:     band,
			Inverted: band.Inverted(),
			Tooltip:  fmt.Sprintf("Attention: %.2f", s.Score),
		})
	}
	return tokens
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
