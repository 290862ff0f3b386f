package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fake-news-detector/models"
)

func TestParseModelID(t *testing.T) {
	cases := []struct {
		in      string
		want    models.ModelID
		wantErr bool
	}{
		{"bert", models.ModelBERT, false},
		{" RoBERTa ", models.ModelRoBERTa, false},
		{"LSTM", models.ModelLSTM, false},
		{"gpt", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := models.ParseModelID(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseModelID(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseModelID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKnownModels(t *testing.T) {
	want := []models.ModelID{models.ModelBERT, models.ModelRoBERTa, models.ModelLSTM}
	if diff := cmp.Diff(want, models.KnownModels()); diff != "" {
		t.Errorf("KnownModels mismatch (-want +got):\n%s", diff)
	}
	if !models.DefaultModel.Valid() {
		t.Error("default model is not a known model")
	}
}

func TestClassificationRequest_Validate(t *testing.T) {
	if err := (models.ClassificationRequest{Text: " \n", Model: models.ModelBERT}).Validate(); !errors.Is(err, models.ErrBlankText) {
		t.Errorf("blank text err = %v, want ErrBlankText", err)
	}
	if err := (models.ClassificationRequest{Text: "news", Model: "xlnet"}).Validate(); !errors.Is(err, models.ErrUnknownModel) {
		t.Errorf("unknown model err = %v, want ErrUnknownModel", err)
	}
	if err := (models.ClassificationRequest{Text: "news", Model: models.ModelLSTM}).Validate(); err != nil {
		t.Errorf("valid request err = %v", err)
	}
}

func TestClassificationResult_Clone(t *testing.T) {
	orig := &models.ClassificationResult{
		Verdict:         models.VerdictFake,
		Indicators:      []models.Indicator{{Type: "sensational", Count: 1}},
		AttentionScores: []models.AttentionScore{{Word: "wow", Score: 0.9}},
	}
	cp := orig.Clone()
	cp.Indicators[0].Count = 5
	cp.AttentionScores[0].Word = "changed"

	if orig.Indicators[0].Count != 1 || orig.AttentionScores[0].Word != "wow" {
		t.Errorf("Clone shares slices with the original: %+v", orig)
	}

	var nilResult *models.ClassificationResult
	if nilResult.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestErrorKind_Message(t *testing.T) {
	for _, k := range []models.ErrorKind{models.ErrorValidation, models.ErrorTransport, models.ErrorProtocol, models.ErrorSchema, models.ErrorTimeout} {
		if k.Message() == "" {
			t.Errorf("%q has no user-facing message", k)
		}
	}
	if models.ErrorNone.Message() != "" {
		t.Errorf("ErrorNone.Message() = %q, want empty", models.ErrorNone.Message())
	}
}

func TestBand_Text(t *testing.T) {
	data, err := json.Marshal(map[string]models.Band{"b": models.BandCritical})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"b":"critical"}` {
		t.Errorf("band JSON = %s", data)
	}
}
