package main

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fake-news-detector/format"
	"fake-news-detector/models"
	"fake-news-detector/services"
)

const maxKeyWords = 8

func escHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func bar(width float64) string {
	filled := int(width/10 + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// FormatResult renders a presentation as Telegram HTML.
func FormatResult(p services.Presentation, sourceLabel string) string {
	var b strings.Builder

	if sourceLabel != "" {
		b.WriteString(fmt.Sprintf("📢 <b>Source:</b> %s\n", sourceLabel))
	}

	emoji := "🟢"
	if p.Verdict.Severity == services.SeverityAlert {
		emoji = "🔴"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s</b> · %s confidence\n", emoji, p.Verdict.Headline, p.Verdict.ConfidenceLabel))
	b.WriteString(fmt.Sprintf("🤖 Model: <b>%s</b>\n\n", escHTML(p.ModelName)))

	b.WriteString(fmt.Sprintf("<code>Fake [%s] %6s%%</code>\n", bar(p.Probabilities.Fake.Width), p.Probabilities.Fake.Text))
	b.WriteString(fmt.Sprintf("<code>Real [%s] %6s%%</code>\n", bar(p.Probabilities.Real.Width), p.Probabilities.Real.Text))

	b.WriteString("\n📊 <b>Feature analysis:</b>\n")
	for _, f := range p.Features {
		mark := "✓"
		if !f.Passed {
			mark = "✗"
		}
		detail := f.Detail
		if f.Name != "Word Count" {
			detail = strings.TrimSpace(strings.TrimLeft(detail, "✓✗"))
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", mark, f.Name, escHTML(detail)))
	}

	if p.Indicators != nil {
		b.WriteString("\n⚠️ <b>Suspicious indicators:</b>\n")
		for _, e := range p.Indicators.Entries {
			b.WriteString(fmt.Sprintf("• %s: %s\n", escHTML(e.Label), e.Detail))
		}
	}

	if words := keyWords(p.Heatmap); len(words) > 0 {
		b.WriteString("\n🔥 <b>Key words:</b> ")
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// keyWords lists the highest-attention tokens from the medium band up.
func keyWords(tokens []services.HeatToken) []string {
	hot := make([]services.HeatToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Band >= models.BandMedium {
			hot = append(hot, t)
		}
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].Score > hot[j].Score })
	if len(hot) > maxKeyWords {
		hot = hot[:maxKeyWords]
	}

	out := make([]string, 0, len(hot))
	for _, t := range hot {
		word := escHTML(t.Word)
		if t.Inverted {
			word = "<b>" + word + "</b>"
		}
		out = append(out, fmt.Sprintf("%s (%.2f)", word, t.Score))
	}
	return out
}

func FormatModels() string {
	return "<pre>" + escHTML(services.RenderComparison(format.ASCII)) + "</pre>\n\n" +
		"<b>Key findings:</b> " + escHTML(services.KeyFindings())
}

func FormatFailure(state models.SessionState) string {
	msg := state.LastErrorMessage
	if msg == "" {
		msg = "Classification failed."
	}
	return fmt.Sprintf("❌ <b>Analysis failed</b> (%s)\n%s", state.LastError, escHTML(msg))
}

// ResultKeyboard offers a re-check and a re-run on every other model.
func ResultKeyboard(current models.ModelID) tgbotapi.InlineKeyboardMarkup {
	var modelRow []tgbotapi.InlineKeyboardButton
	for _, m := range services.Models() {
		if m.ID == current {
			continue
		}
		modelRow = append(modelRow, tgbotapi.NewInlineKeyboardButtonData("🔁 "+m.DisplayName, "model:"+string(m.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		modelRow,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Re-check", "rescan")),
	)
}

// ModelKeyboard lets the user pick the model for the next submission.
func ModelKeyboard(current models.ModelID) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, m := range services.Models() {
		label := m.DisplayName
		if m.ID == current {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "select:"+string(m.ID)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}
