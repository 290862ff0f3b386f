package services

import (
	"context"
	"math"
	"strings"
	"unicode"

	"fake-news-detector/models"
)

// HeuristicClassifier is an offline stand-in for the remote service. It
// scores text with fixed keyword lists, so the same input always yields the
// same result. Used for demos (--offline) and tests.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier { return &HeuristicClassifier{} }

type lexicon struct {
	category string
	terms    []string
}

var suspiciousLexicons = []lexicon{
	{category: "sensational", terms: []string{"breaking", "shocking", "miracle", "cures", "unbelievable", "completely", "secret"}},
	{category: "vague sourcing", terms: []string{"unnamed", "a recent study", "sources say", "experts say", "some say"}},
	{category: "conspiracy", terms: []string{"trying to hide", "they don't want", "cover up", "cover-up", "mainstream media"}},
}

var (
	attributionTerms = []string{"said", "stated", "announced", "according to", "reported", "told"}
	monthNames       = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
)

func (h *HeuristicClassifier) Classify(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &ClassifyError{Kind: models.ErrorValidation, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ClassifyError{Kind: KindOf(err), Err: err}
	}

	text := req.Text
	lower := strings.ToLower(text)
	tokens := strings.Fields(text)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = normalizeToken(t)
	}

	features := models.Features{
		HasQuotes:      strings.ContainsAny(text, "\"“”«»"),
		HasAttribution: countTerms(lower, words, attributionTerms) > 0,
		HasDates:       countTerms(lower, words, monthNames) > 0,
		WordCount:      len(tokens),
	}

	indicators := []models.Indicator{}
	suspicion := 0
	for _, lx := range suspiciousLexicons {
		if n := countTerms(lower, words, lx.terms); n > 0 {
			indicators = append(indicators, models.Indicator{Type: lx.category, Count: n})
			suspicion += n
		}
	}
	if n := strings.Count(text, "!"); n > 0 {
		indicators = append(indicators, models.Indicator{Type: "emotional", Count: n})
		suspicion += n
	}

	fake := 0.1 + 0.11*float64(suspicion)
	if !features.HasAttribution {
		fake += 0.1
	}
	fake = round2(math.Min(math.Max(fake, 0.03), 0.97))
	realP := round2(1 - fake)

	res := &models.ClassificationResult{
		Verdict:         models.VerdictReal,
		Confidence:      realP,
		Probabilities:   models.Probabilities{Fake: fake, Real: realP},
		ModelUsed:       req.Model,
		Features:        features,
		Indicators:      indicators,
		AttentionScores: attention(tokens, words),
	}
	if fake > 0.5 {
		res.Verdict = models.VerdictFake
		res.Confidence = fake
	}
	return res, nil
}

func attention(tokens, words []string) []models.AttentionScore {
	flagged := map[string]bool{}
	for _, lx := range suspiciousLexicons {
		for _, term := range lx.terms {
			for _, w := range strings.Fields(term) {
				if len(w) > 4 {
					flagged[w] = true
				}
			}
		}
	}

	out := make([]models.AttentionScore, 0, len(tokens))
	for i, tok := range tokens {
		score := 0.1
		if len(words[i]) > 7 {
			score += 0.15
		}
		if flagged[words[i]] {
			score = 0.85
		}
		if isShouting(tok) {
			score += 0.1
		}
		if strings.Contains(tok, "!") {
			score += 0.2
		}
		out = append(out, models.AttentionScore{Word: tok, Score: round2(math.Min(score, 1))})
	}
	return out
}

// countTerms counts single-word terms against tokens and phrases against the
// lowercased text.
func countTerms(lower string, words []string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(term, " ") {
			n += strings.Count(lower, term)
			continue
		}
		for _, w := range words {
			if w == term {
				n++
			}
		}
	}
	return n
}

func normalizeToken(t string) string {
	return strings.ToLower(strings.TrimFunc(t, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	}))
}

func isShouting(tok string) bool {
	letters := 0
	for _, r := range tok {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
