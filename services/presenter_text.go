package services

import (
	"fmt"
	"strings"

	"fake-news-detector/models"
)

var bandMarks = map[models.Band]string{
	models.BandLow:      "",
	models.BandMedium:   "~",
	models.BandHigh:     "!",
	models.BandCritical: "!!",
}

// FormatText renders a presentation for a plain-text terminal.
func FormatText(p Presentation) string {
	var b strings.Builder

	emoji := "🟢"
	if p.Verdict.Severity == SeverityAlert {
		emoji = "🔴"
	}
	b.WriteString(fmt.Sprintf("%s %s  (Confidence: %s)\n", emoji, p.Verdict.Headline, p.Verdict.ConfidenceLabel))
	b.WriteString(fmt.Sprintf("Model: %s\n\n", p.ModelName))

	for _, bar := range []ProbabilityBar{p.Probabilities.Fake, p.Probabilities.Real} {
		filled := int(bar.Width/10 + 0.5)
		b.WriteString(fmt.Sprintf("%-17s [%s%s] %s%%\n", bar.Label, strings.Repeat("█", filled), strings.Repeat("░", 10-filled), bar.Text))
	}

	b.WriteString("\nFeature Analysis\n")
	for _, f := range p.Features {
		b.WriteString(fmt.Sprintf("  %-15s %s\n", f.Name, f.Detail))
	}

	if p.Indicators != nil {
		b.WriteString("\nSuspicious Indicators\n")
		for _, e := range p.Indicators.Entries {
			b.WriteString(fmt.Sprintf("  %-25s %s\n", e.Label, e.Detail))
		}
	}

	if len(p.Heatmap) > 0 {
		b.WriteString("\nAttention Heatmap (~ medium, ! high, !! critical)\n  ")
		words := make([]string, 0, len(p.Heatmap))
		for _, t := range p.Heatmap {
			w := t.Word
			if t.Inverted {
				w = strings.ToUpper(w)
			}
			words = append(words, w+bandMarks[t.Band])
		}
		b.WriteString(strings.Join(words, " "))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
