package models

// Phase is the lifecycle position of a classification session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// ErrorKind tells the rendering layer why the last submit did not succeed.
type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorValidation ErrorKind = "validation"
	ErrorTransport  ErrorKind = "transport"
	ErrorProtocol   ErrorKind = "protocol"
	ErrorSchema     ErrorKind = "schema"
	ErrorTimeout    ErrorKind = "timeout"
)

// Message is the user-facing explanation for a failed submit.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorValidation:
		return "Please enter some article text before analyzing."
	case ErrorTransport:
		return "The classification service could not be reached. Try again."
	case ErrorProtocol:
		return "The classification service returned an unreadable response."
	case ErrorSchema:
		return "The classification service returned an incomplete result."
	case ErrorTimeout:
		return "The classification service took too long to answer. Try again."
	default:
		return ""
	}
}

// SessionState is a read-only snapshot of a session. Result is only set
// when Phase is PhaseSucceeded.
type SessionState struct {
	InputText        string                `json:"input_text"`
	SelectedModel    ModelID               `json:"selected_model"`
	Phase            Phase                 `json:"phase"`
	Result           *ClassificationResult `json:"result,omitempty"`
	LastError        ErrorKind             `json:"last_error,omitempty"`
	LastErrorMessage string                `json:"last_error_message,omitempty"`
}
