package services

import "fake-news-detector/models"

// Attention band thresholds. A score equal to a threshold belongs to the
// lower band.
const (
	CriticalThreshold = 0.8
	HighThreshold     = 0.6
	MediumThreshold   = 0.4
)

// Band maps an attention score to its heatmap severity. NaN falls to Low.
func Band(score float64) models.Band {
	switch {
	case score > CriticalThreshold:
		return models.BandCritical
	case score > HighThreshold:
		return models.BandHigh
	case score > MediumThreshold:
		return models.BandMedium
	default:
		return models.BandLow
	}
}
