package services

import (
	"log"

	"fake-news-detector/config"
	"fake-news-detector/models"
)

// NewClassifierFromConfig picks the offline heuristic or the HTTP service and
// puts the Redis memo in front of it.
func NewClassifierFromConfig(cfg *config.Config) Classifier {
	var base Classifier
	if cfg.Offline {
		log.Println("[CLASSIFIER] ⚠ offline mode: using the built-in heuristic classifier")
		base = NewHeuristicClassifier()
	} else {
		base = NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout, cfg.ClassifierURLs)
		log.Printf("[CLASSIFIER] ✓ endpoint %s (timeout %s)", cfg.ClassifierURL, cfg.ClassifierTimeout)
		for id, u := range cfg.ClassifierURLs {
			log.Printf("[CLASSIFIER]   - %s → %s", id, u)
		}
	}
	return NewCachedClassifier(base, cfg.CacheTTL)
}

// NewSessionFactory returns a constructor for sessions that start on
// defaultModel and report each result to observer (which may be nil).
func NewSessionFactory(classifier Classifier, defaultModel models.ModelID, observer ResultObserver) func() *SessionController {
	return func() *SessionController {
		ctrl := NewSessionController(classifier)
		if err := ctrl.SelectModel(defaultModel); err != nil {
			log.Printf("[SESSION] ⚠ default model: %v, keeping %s", err, models.DefaultModel)
		}
		if observer != nil {
			ctrl.OnResult(observer)
		}
		return ctrl
	}
}
