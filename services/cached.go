package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"fake-news-detector/cache"
	"fake-news-detector/models"
)

// CachedClassifier memoises successful classifications in Redis for a short
// TTL. Failures are never cached. Without Redis it simply delegates.
type CachedClassifier struct {
	next Classifier
	ttl  time.Duration
}

func NewCachedClassifier(next Classifier, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{next: next, ttl: ttl}
}

// CacheKey identifies a (model, text) pair without storing the text itself.
func CacheKey(req models.ClassificationRequest) string {
	sum := sha256.Sum256([]byte(req.Text))
	return "fnd:classify:" + string(req.Model) + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedClassifier) Classify(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
	if !cache.Enabled() || c.ttl <= 0 {
		return c.next.Classify(ctx, req)
	}

	key := CacheKey(req)
	raw, err := cache.Get(ctx, key)
	switch {
	case err == nil:
		var res models.ClassificationResult
		if jerr := json.Unmarshal(raw, &res); jerr == nil {
			log.Printf("[CACHE] ✓ hit %s", key[:32])
			res.ModelUsed = req.Model
			return &res, nil
		}
		log.Printf("[CACHE] ⚠ corrupt entry %s, ignoring", key[:32])
	case !errors.Is(err, cache.ErrMiss):
		log.Printf("[CACHE] ⚠ read failed: %v", err)
	}

	res, err := c.next.Classify(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(res); jerr == nil {
		if serr := cache.Set(ctx, key, data, c.ttl); serr != nil {
			log.Printf("[CACHE] ⚠ write failed: %v", serr)
		}
	}
	return res, nil
}
