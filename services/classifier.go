package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"fake-news-detector/models"
)

// Classifier is the remote service that turns text into a verdict.
type Classifier interface {
	Classify(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error)
}

// ClassifyError carries the ErrorKind a failed classification maps to.
type ClassifyError struct {
	Kind models.ErrorKind
	Err  error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ClassifyError) Unwrap() error { return e.Err }

func classifyErr(kind models.ErrorKind, format string, args ...any) *ClassifyError {
	return &ClassifyError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the ErrorKind from err. Unknown errors count as transport
// failures since they happened on the way to the service.
func KindOf(err error) models.ErrorKind {
	if err == nil {
		return models.ErrorNone
	}
	var ce *ClassifyError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, models.ErrBlankText) || errors.Is(err, models.ErrUnknownModel) {
		return models.ErrorValidation
	}
	if isTimeout(err) {
		return models.ErrorTimeout
	}
	return models.ErrorTransport
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

const maxResponseBytes = 4 << 20

// HTTPClassifier posts {"text": ...} to the prediction endpoint of the
// selected model and parses the JSON verdict.
type HTTPClassifier struct {
	DefaultURL string
	Endpoints  map[models.ModelID]string
	client     *http.Client
}

func NewHTTPClassifier(defaultURL string, timeout time.Duration, endpoints map[models.ModelID]string) *HTTPClassifier {
	if endpoints == nil {
		endpoints = map[models.ModelID]string{}
	}
	return &HTTPClassifier{
		DefaultURL: defaultURL,
		Endpoints:  endpoints,
		client:     &http.Client{Timeout: timeout},
	}
}

// EndpointFor returns the URL requests for model are sent to.
func (c *HTTPClassifier) EndpointFor(model models.ModelID) string {
	if u := c.Endpoints[model]; u != "" {
		return u
	}
	return c.DefaultURL
}

func (c *HTTPClassifier) Classify(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &ClassifyError{Kind: models.ErrorValidation, Err: err}
	}

	endpoint := c.EndpointFor(req.Model)
	body, err := json.Marshal(map[string]string{"text": req.Text})
	if err != nil {
		return nil, classifyErr(models.ErrorProtocol, "marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, classifyErr(models.ErrorTransport, "build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Printf("[CLASSIFIER] 📤 %s → %s (%d chars)", req.Model, endpoint, len(req.Text))
	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		kind := models.ErrorTransport
		if isTimeout(err) {
			kind = models.ErrorTimeout
		}
		recordUpstream(req.Model, endpoint, 0, time.Since(start), kind)
		log.Printf("[CLASSIFIER] ❌ request failed: %v", err)
		return nil, &ClassifyError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	if err != nil {
		kind := models.ErrorTransport
		if isTimeout(err) {
			kind = models.ErrorTimeout
		}
		recordUpstream(req.Model, endpoint, resp.StatusCode, elapsed, kind)
		return nil, &ClassifyError{Kind: kind, Err: fmt.Errorf("read response: %w", err)}
	}

	log.Printf("[CLASSIFIER] ✓ status %d (%.2fs), %d bytes", resp.StatusCode, elapsed.Seconds(), len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		recordUpstream(req.Model, endpoint, resp.StatusCode, elapsed, models.ErrorProtocol)
		return nil, classifyErr(models.ErrorProtocol, "service returned status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(raw)), 200))
	}

	result, err := ParseResponse(raw, req.Model)
	if err != nil {
		recordUpstream(req.Model, endpoint, resp.StatusCode, elapsed, KindOf(err))
		log.Printf("[CLASSIFIER] ❌ %v", err)
		return nil, err
	}

	recordUpstream(req.Model, endpoint, resp.StatusCode, elapsed, models.ErrorNone)
	log.Printf("[CLASSIFIER] ✅ %s, confidence %.2f", result.Verdict, result.Confidence)
	return result, nil
}

type wireResponse struct {
	Prediction      *string          `json:"prediction"`
	Confidence      *float64         `json:"confidence"`
	FakeProbability *float64         `json:"fake_probability"`
	RealProbability *float64         `json:"real_probability"`
	Features        *wireFeatures    `json:"features"`
	Indicators      *[]wireIndicator `json:"indicators"`
	AttentionScores *[]wireAttention `json:"attention_scores"`
}

type wireFeatures struct {
	HasQuotes      *bool `json:"has_quotes"`
	HasAttribution *bool `json:"has_attribution"`
	HasDates       *bool `json:"has_dates"`
	WordCount      *int  `json:"word_count"`
}

type wireIndicator struct {
	Type  *string `json:"type"`
	Count *int    `json:"count"`
}

type wireAttention struct {
	Word  *string  `json:"word"`
	Score *float64 `json:"score"`
}

// ParseResponse is the single decode step for classifier responses. Bodies
// that are not JSON objects are protocol errors; missing or out-of-range
// fields are schema errors and no partial result is returned.
func ParseResponse(raw []byte, model models.ModelID) (*models.ClassificationResult, error) {
	var w wireResponse
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, classifyErr(models.ErrorProtocol, "decode response: %w", err)
	}

	var problems []string
	missing := func(name string) { problems = append(problems, "missing "+name) }
	invalid := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	res := &models.ClassificationResult{ModelUsed: model}

	switch {
	case w.Prediction == nil:
		missing("prediction")
	default:
		res.Verdict = models.Verdict(strings.ToUpper(strings.TrimSpace(*w.Prediction)))
		if !res.Verdict.Valid() {
			invalid("prediction %q is not FAKE or REAL", *w.Prediction)
		}
	}

	unit := func(name string, v *float64, dst *float64) {
		if v == nil {
			missing(name)
			return
		}
		if !inUnitRange(*v) {
			invalid("%s %v outside [0,1]", name, *v)
			return
		}
		*dst = *v
	}
	unit("confidence", w.Confidence, &res.Confidence)
	unit("fake_probability", w.FakeProbability, &res.Probabilities.Fake)
	unit("real_probability", w.RealProbability, &res.Probabilities.Real)

	if w.Features == nil {
		missing("features")
	} else {
		f := w.Features
		flag := func(name string, v *bool, dst *bool) {
			if v == nil {
				missing("features." + name)
				return
			}
			*dst = *v
		}
		flag("has_quotes", f.HasQuotes, &res.Features.HasQuotes)
		flag("has_attribution", f.HasAttribution, &res.Features.HasAttribution)
		flag("has_dates", f.HasDates, &res.Features.HasDates)
		switch {
		case f.WordCount == nil:
			missing("features.word_count")
		case *f.WordCount < 0:
			invalid("features.word_count %d is negative", *f.WordCount)
		default:
			res.Features.WordCount = *f.WordCount
		}
	}

	if w.Indicators == nil {
		missing("indicators")
	} else {
		res.Indicators = make([]models.Indicator, 0, len(*w.Indicators))
		for i, ind := range *w.Indicators {
			switch {
			case ind.Type == nil || strings.TrimSpace(*ind.Type) == "":
				missing(fmt.Sprintf("indicators[%d].type", i))
			case ind.Count == nil:
				missing(fmt.Sprintf("indicators[%d].count", i))
			case *ind.Count < 1:
				invalid("indicators[%d].count %d is not positive", i, *ind.Count)
			default:
				res.Indicators = append(res.Indicators, models.Indicator{Type: *ind.Type, Count: *ind.Count})
			}
		}
	}

	if w.AttentionScores == nil {
		missing("attention_scores")
	} else {
		res.AttentionScores = make([]models.AttentionScore, 0, len(*w.AttentionScores))
		for i, a := range *w.AttentionScores {
			switch {
			case a.Word == nil:
				missing(fmt.Sprintf("attention_scores[%d].word", i))
			case a.Score == nil:
				missing(fmt.Sprintf("attention_scores[%d].score", i))
			case !inUnitRange(*a.Score):
				invalid("attention_scores[%d].score %v outside [0,1]", i, *a.Score)
			default:
				res.AttentionScores = append(res.AttentionScores, models.AttentionScore{Word: *a.Word, Score: *a.Score})
			}
		}
	}

	if len(problems) > 0 {
		return nil, classifyErr(models.ErrorSchema, "invalid result: %s", strings.Join(problems, "; "))
	}
	return res, nil
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
