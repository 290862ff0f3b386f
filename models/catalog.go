package models

type Architecture string

const (
	ArchTransformer Architecture = "Transformer"
	ArchRecurrent   Architecture = "RNN-based"
)

// ModelMetadata is static reference data for one classifier variant.
type ModelMetadata struct {
	ID               ModelID      `json:"id"`
	DisplayName      string       `json:"display_name"`
	AccuracyPercent  float64      `json:"accuracy_percent"`
	ProcessingTimeMs int          `json:"processing_time_ms"`
	Architecture     Architecture `json:"architecture"`
}

// Band is the visual severity bucket of an attention score.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
	BandCritical
)

func (b Band) String() string {
	switch b {
	case BandCritical:
		return "critical"
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

// Inverted reports whether tokens in this band use high-contrast text.
func (b Band) Inverted() bool {
	return b >= BandHigh
}

func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
