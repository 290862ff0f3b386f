package models

import (
	"errors"
	"fmt"
	"strings"
)

// ModelID identifies one of the classifier variants a user can pick.
type ModelID string

const (
	ModelBERT    ModelID = "bert"    // primary transformer
	ModelRoBERTa ModelID = "roberta" // secondary transformer
	ModelLSTM    ModelID = "lstm"    // recurrent

	DefaultModel = ModelBERT
)

var knownModels = []ModelID{ModelBERT, ModelRoBERTa, ModelLSTM}

// KnownModels returns the supported model ids in display order.
func KnownModels() []ModelID {
	out := make([]ModelID, len(knownModels))
	copy(out, knownModels)
	return out
}

func (id ModelID) Valid() bool {
	for _, m := range knownModels {
		if m == id {
			return true
		}
	}
	return false
}

// ParseModelID accepts ids case-insensitively ("BERT", " roberta ").
func ParseModelID(s string) (ModelID, error) {
	id := ModelID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", fmt.Errorf("unknown model %q", s)
	}
	return id, nil
}

type Verdict string

const (
	VerdictFake Verdict = "FAKE"
	VerdictReal Verdict = "REAL"
)

func (v Verdict) Valid() bool {
	return v == VerdictFake || v == VerdictReal
}

var (
	ErrBlankText    = errors.New("text is blank")
	ErrUnknownModel = errors.New("unknown model")
)

// ClassificationRequest is what gets sent to the remote classifier.
type ClassificationRequest struct {
	Text  string  `json:"text"`
	Model ModelID `json:"model"`
}

// Validate rejects requests that must never leave the process.
func (r ClassificationRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrBlankText
	}
	if !r.Model.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownModel, r.Model)
	}
	return nil
}

type Probabilities struct {
	Fake float64 `json:"fake"`
	Real float64 `json:"real"`
}

// Features are surface-level signals extracted from the submitted text.
type Features struct {
	HasQuotes      bool `json:"has_quotes"`
	HasAttribution bool `json:"has_attribution"`
	HasDates       bool `json:"has_dates"`
	WordCount      int  `json:"word_count"`
}

// Indicator is a category of suspicious language with its occurrence count.
type Indicator struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// AttentionScore is the weight a single token had on the decision.
type AttentionScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// ClassificationResult is the classifier's verdict plus explainability data.
// It is treated as immutable once received; use Clone before handing it out.
type ClassificationResult struct {
	Verdict         Verdict          `json:"verdict"`
	Confidence      float64          `json:"confidence"`
	Probabilities   Probabilities    `json:"probabilities"`
	ModelUsed       ModelID          `json:"model_used"`
	Features        Features         `json:"features"`
	Indicators      []Indicator      `json:"indicators"`
	AttentionScores []AttentionScore `json:"attention_scores"`
}

// Clone returns a deep copy so callers cannot alias the slices.
func (r *ClassificationResult) Clone() *ClassificationResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Indicators = append([]Indicator{}, r.Indicators...)
	cp.AttentionScores = append([]AttentionScore{}, r.AttentionScores...)
	return &cp
}
