package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fake-news-detector/models"
	"fake-news-detector/services"
)

func TestCacheKey(t *testing.T) {
	a := services.CacheKey(models.ClassificationRequest{Text: "some news", Model: models.ModelBERT})
	b := services.CacheKey(models.ClassificationRequest{Text: "some news", Model: models.ModelLSTM})
	c := services.CacheKey(models.ClassificationRequest{Text: "other news", Model: models.ModelBERT})

	if !strings.HasPrefix(a, "fnd:classify:bert:") {
		t.Errorf("key = %q, want fnd:classify:bert: prefix", a)
	}
	if a == b || a == c {
		t.Errorf("keys collide: %q %q %q", a, b, c)
	}
	if strings.Contains(a, "some news") {
		t.Errorf("key leaks the text: %q", a)
	}
}

func TestCachedClassifier_PassThroughWithoutRedis(t *testing.T) {
	calls := 0
	next := classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		calls++
		if req.Text == "fail" {
			return nil, &services.ClassifyError{Kind: models.ErrorTransport, Err: errors.New("down")}
		}
		return sampleResult(), nil
	})
	c := services.NewCachedClassifier(next, time.Minute)
	req := models.ClassificationRequest{Text: "some news", Model: models.ModelBERT}

	for i := 0; i < 2; i++ {
		if _, err := c.Classify(context.Background(), req); err != nil {
			t.Fatalf("Classify: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("next called %d times, want 2 with no cache configured", calls)
	}

	_, err := c.Classify(context.Background(), models.ClassificationRequest{Text: "fail", Model: models.ModelBERT})
	if services.KindOf(err) != models.ErrorTransport {
		t.Errorf("error kind = %q, want transport passed through", services.KindOf(err))
	}
}
