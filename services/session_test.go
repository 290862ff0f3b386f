package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fake-news-detector/models"
	"fake-news-detector/services"
)

type classifierFunc func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error)

func (f classifierFunc) Classify(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
	return f(ctx, req)
}

func sampleResult() *models.ClassificationResult {
	return &models.ClassificationResult{
		Verdict:       models.VerdictFake,
		Confidence:    0.93,
		Probabilities: models.Probabilities{Fake: 0.93, Real: 0.07},
		ModelUsed:     models.ModelBERT,
		Features:      models.Features{HasQuotes: true, WordCount: 45},
		Indicators:    []models.Indicator{{Type: "sensational", Count: 2}},
		AttentionScores: []models.AttentionScore{
			{Word: "shocking", Score: 0.9},
			{Word: "news", Score: 0.2},
		},
	}
}

func TestSessionController_InitialState(t *testing.T) {
	c := services.NewSessionController(classifierFunc(nil))
	want := models.SessionState{SelectedModel: models.DefaultModel, Phase: models.PhaseIdle}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_BlankInputSendsNothing(t *testing.T) {
	var calls atomic.Int32
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		calls.Add(1)
		return sampleResult(), nil
	}))

	for _, text := range []string{"", "   ", "\n\t "} {
		c.SetInputText(text)
		before := c.State()

		err := c.Submit(context.Background())
		if !errors.Is(err, services.ErrBlankInput) {
			t.Errorf("Submit(%q) err = %v, want ErrBlankInput", text, err)
		}
		if diff := cmp.Diff(before, c.State()); diff != "" {
			t.Errorf("Submit(%q) changed state (-before +after):\n%s", text, diff)
		}
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("classifier called %d times, want 0", n)
	}
}

func TestSubmit_InFlightGuard(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	var sentText string

	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		calls.Add(1)
		sentText = req.Text
		close(started)
		<-release
		return sampleResult(), nil
	}))
	c.SetInputText("first text")

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = c.Submit(context.Background())
	}()
	<-started

	if got := c.State().Phase; got != models.PhaseSubmitting {
		t.Fatalf("phase during request = %q, want submitting", got)
	}
	if err := c.Submit(context.Background()); !errors.Is(err, services.ErrSubmitInFlight) {
		t.Errorf("second Submit err = %v, want ErrSubmitInFlight", err)
	}

	// Editing while in flight only affects the next submission.
	c.SetInputText("second text")

	close(release)
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first Submit: %v", firstErr)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("classifier called %d times, want 1", n)
	}
	if sentText != "first text" {
		t.Errorf("request text = %q, want the text at submit time", sentText)
	}
	st := c.State()
	if st.Phase != models.PhaseSucceeded {
		t.Errorf("phase = %q, want succeeded", st.Phase)
	}
	if st.InputText != "second text" {
		t.Errorf("input text = %q, want the edited text", st.InputText)
	}
}

func TestSubmit_SchemaFailure(t *testing.T) {
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		return services.ParseResponse([]byte(`{"prediction":"FAKE","confidence":0.9}`), req.Model)
	}))
	c.SetInputText("some news")

	err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	st := c.State()
	if st.Phase != models.PhaseFailed {
		t.Errorf("phase = %q, want failed", st.Phase)
	}
	if st.Result != nil {
		t.Errorf("result = %+v, want nil", st.Result)
	}
	if st.LastError != models.ErrorSchema {
		t.Errorf("LastError = %q, want schema", st.LastError)
	}
	if st.LastErrorMessage == "" {
		t.Error("LastErrorMessage is empty")
	}
}

func TestSubmit_NilResultIsFailure(t *testing.T) {
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		return nil, nil
	}))
	c.SetInputText("some news")

	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected error for nil result")
	}
	if st := c.State(); st.Phase != models.PhaseFailed || st.LastError != models.ErrorProtocol {
		t.Errorf("state = %+v, want failed/protocol", st)
	}
}

func TestSubmit_Success(t *testing.T) {
	var gotModel models.ModelID
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		gotModel = req.Model
		return sampleResult(), nil // reports bert regardless of request
	}))
	c.SetInputText("some news")
	if err := c.SelectModel(models.ModelRoBERTa); err != nil {
		t.Fatalf("SelectModel: %v", err)
	}

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotModel != models.ModelRoBERTa {
		t.Errorf("request model = %q, want roberta", gotModel)
	}

	st := c.State()
	if st.Phase != models.PhaseSucceeded || st.LastError != models.ErrorNone {
		t.Fatalf("state = %+v, want succeeded without error", st)
	}
	want := sampleResult()
	want.ModelUsed = models.ModelRoBERTa
	if diff := cmp.Diff(want, st.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	// Snapshots must not alias the stored result.
	st.Result.Indicators[0].Count = 99
	st.Result.AttentionScores[0].Word = "changed"
	if diff := cmp.Diff(want, c.State().Result); diff != "" {
		t.Errorf("stored result changed through snapshot (-want +got):\n%s", diff)
	}
}

func TestSubmit_RetryAfterFailureClearsError(t *testing.T) {
	fail := true
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		if fail {
			return nil, &services.ClassifyError{Kind: models.ErrorTransport, Err: errors.New("connection refused")}
		}
		return sampleResult(), nil
	}))
	c.SetInputText("some news")

	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
	if got := c.State().LastError; got != models.ErrorTransport {
		t.Fatalf("LastError = %q, want transport", got)
	}

	fail = false
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	st := c.State()
	if st.Phase != models.PhaseSucceeded || st.LastError != models.ErrorNone || st.LastErrorMessage != "" {
		t.Errorf("state after retry = %+v", st)
	}
}

func TestSelectModel_Unknown(t *testing.T) {
	c := services.NewSessionController(classifierFunc(nil))
	if err := c.SelectModel(models.ModelLSTM); err != nil {
		t.Fatalf("SelectModel(lstm): %v", err)
	}
	err := c.SelectModel("gpt")
	if !errors.Is(err, models.ErrUnknownModel) {
		t.Errorf("err = %v, want ErrUnknownModel", err)
	}
	if got := c.State().SelectedModel; got != models.ModelLSTM {
		t.Errorf("selected model = %q, want lstm kept", got)
	}
}

func TestSubmit_NotifiesObserver(t *testing.T) {
	c := services.NewSessionController(classifierFunc(func(ctx context.Context, req models.ClassificationRequest) (*models.ClassificationResult, error) {
		return sampleResult(), nil
	}))
	var seen []models.ClassificationResult
	c.OnResult(func(ctx context.Context, r models.ClassificationResult) {
		seen = append(seen, r)
	})
	c.SetInputText("some news")

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("observer called %d times, want 1", len(seen))
	}
	if seen[0].Verdict != models.VerdictFake || seen[0].ModelUsed != models.ModelBERT {
		t.Errorf("observer got %+v", seen[0])
	}
}

func TestNewSessionFactory_DefaultModel(t *testing.T) {
	newSession := services.NewSessionFactory(classifierFunc(nil), models.ModelLSTM, nil)
	if got := newSession().State().SelectedModel; got != models.ModelLSTM {
		t.Errorf("selected model = %q, want lstm", got)
	}
}
