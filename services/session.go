package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"fake-news-detector/models"
)

var (
	ErrBlankInput     = fmt.Errorf("submit: %w", models.ErrBlankText)
	ErrSubmitInFlight = errors.New("submit: a classification is already in progress")
)

// ResultObserver is told about every successful classification.
type ResultObserver func(ctx context.Context, result models.ClassificationResult)

// SessionController owns the state of one analysis session and guarantees
// at most one in-flight classification request.
type SessionController struct {
	classifier Classifier

	mu       sync.Mutex
	state    models.SessionState
	observer ResultObserver
}

func NewSessionController(classifier Classifier) *SessionController {
	return &SessionController{
		classifier: classifier,
		state: models.SessionState{
			SelectedModel: models.DefaultModel,
			Phase:         models.PhaseIdle,
		},
	}
}

// OnResult registers fn to be called after each successful submit.
func (c *SessionController) OnResult(fn ResultObserver) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

func (c *SessionController) SetInputText(text string) {
	c.mu.Lock()
	c.state.InputText = text
	c.mu.Unlock()
}

// SelectModel changes the model used by the next submit. Unknown ids are
// rejected and leave the selection untouched.
func (c *SessionController) SelectModel(id models.ModelID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownModel, id)
	}
	c.mu.Lock()
	c.state.SelectedModel = id
	c.mu.Unlock()
	return nil
}

// State returns a snapshot that is safe to hand to a rendering layer.
func (c *SessionController) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	if st.Phase == models.PhaseSucceeded {
		st.Result = c.state.Result.Clone()
	} else {
		st.Result = nil
	}
	return st
}

// Submit sends the current input to the classifier and blocks until it
// answers. It returns ErrSubmitInFlight or ErrBlankInput without touching
// the state; any classifier failure moves the session to PhaseFailed and is
// returned to the caller.
func (c *SessionController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Phase == models.PhaseSubmitting {
		c.mu.Unlock()
		log.Printf("[SESSION] ⚠ submit rejected: request already in flight")
		return ErrSubmitInFlight
	}
	if strings.TrimSpace(c.state.InputText) == "" {
		c.mu.Unlock()
		return ErrBlankInput
	}

	req := models.ClassificationRequest{Text: c.state.InputText, Model: c.state.SelectedModel}
	c.state.Phase = models.PhaseSubmitting
	c.state.Result = nil
	c.state.LastError = models.ErrorNone
	c.state.LastErrorMessage = ""
	c.mu.Unlock()

	log.Printf("[SESSION] 🚀 submitting %d chars to %s", len(req.Text), req.Model)

	result, err := c.classifier.Classify(ctx, req)
	if err == nil && result == nil {
		err = classifyErr(models.ErrorProtocol, "classifier returned no result")
	}

	c.mu.Lock()
	if err != nil {
		kind := KindOf(err)
		c.state.Phase = models.PhaseFailed
		c.state.LastError = kind
		c.state.LastErrorMessage = kind.Message()
		c.mu.Unlock()
		log.Printf("[SESSION] ❌ classification failed (%s): %v", kind, err)
		return err
	}

	stored := result.Clone()
	stored.ModelUsed = req.Model
	c.state.Phase = models.PhaseSucceeded
	c.state.Result = stored
	observer := c.observer
	c.mu.Unlock()

	log.Printf("[SESSION] ✅ %s (confidence %.2f) via %s", stored.Verdict, stored.Confidence, stored.ModelUsed)

	if observer != nil {
		observer(ctx, *stored.Clone())
	}
	return nil
}
