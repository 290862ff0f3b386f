package services

import (
	"fmt"
	"strings"

	"fake-news-detector/format"
	"fake-news-detector/models"
)

// modelCatalog is the static comparison data shown next to the analyzer.
var modelCatalog = []models.ModelMetadata{
	{ID: models.ModelBERT, DisplayName: "BERT", AccuracyPercent: 94.2, ProcessingTimeMs: 245, Architecture: models.ArchTransformer},
	{ID: models.ModelRoBERTa, DisplayName: "RoBERTa", AccuracyPercent: 95.8, ProcessingTimeMs: 278, Architecture: models.ArchTransformer},
	{ID: models.ModelLSTM, DisplayName: "LSTM", AccuracyPercent: 89.5, ProcessingTimeMs: 156, Architecture: models.ArchRecurrent},
}

// Models returns a copy of the catalog in display order.
func Models() []models.ModelMetadata {
	out := make([]models.ModelMetadata, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}

func Lookup(id models.ModelID) (models.ModelMetadata, bool) {
	for _, m := range modelCatalog {
		if m.ID == id {
			return m, true
		}
	}
	return models.ModelMetadata{}, false
}

// DisplayName falls back to the upper-cased id for models missing from the catalog.
func DisplayName(id models.ModelID) string {
	if m, ok := Lookup(id); ok {
		return m.DisplayName
	}
	return strings.ToUpper(string(id))
}

// Best returns the most accurate model; ties keep catalog order.
func Best() models.ModelMetadata {
	best := modelCatalog[0]
	for _, m := range modelCatalog[1:] {
		if m.AccuracyPercent > best.AccuracyPercent {
			best = m
		}
	}
	return best
}

// KeyFindings summarises the comparison in one paragraph.
func KeyFindings() string {
	var transformers []string
	var fastest models.ModelMetadata
	slowestTransformer := 0
	for i, m := range modelCatalog {
		if i == 0 || m.ProcessingTimeMs < fastest.ProcessingTimeMs {
			fastest = m
		}
		if m.Architecture == models.ArchTransformer {
			transformers = append(transformers, m.DisplayName)
			if m.ProcessingTimeMs > slowestTransformer {
				slowestTransformer = m.ProcessingTimeMs
			}
		}
	}
	best := Best()
	return fmt.Sprintf(
		"Transformer models (%s) outperform %s in accuracy but require more processing time (up to %dms vs %dms). %s shows best overall performance with %.1f%% accuracy.",
		strings.Join(transformers, ", "), fastest.DisplayName, slowestTransformer, fastest.ProcessingTimeMs,
		best.DisplayName, best.AccuracyPercent,
	)
}

// RenderComparison draws the catalog as a table.
func RenderComparison(mode format.Mode) string {
	t := format.NewTable(mode)
	t.Header("Model", "Accuracy", "Processing", "Type")
	for _, m := range modelCatalog {
		t.Row(m.DisplayName, fmt.Sprintf("%.1f%%", m.AccuracyPercent), fmt.Sprintf("%dms", m.ProcessingTimeMs), string(m.Architecture))
	}
	t.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
	)
	return t.String()
}
