package services

import "strings"

// Example is a canned article users can load into the input box.
type Example struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

var examples = []Example{
	{
		Label: "Real News",
		Text:  "The Federal Reserve announced today that it would maintain interest rates at their current levels, citing stable economic indicators and moderate inflation. Chairman Jerome Powell stated that the decision reflects the committee's assessment of economic conditions.",
	},
	{
		Label: "Fake News",
		Text:  "BREAKING: Scientists discover that drinking coffee cures all forms of cancer! A recent study by an unnamed university claims that 10 cups of coffee daily eliminates cancer cells completely. Pharmaceutical companies are trying to hide this information!",
	},
}

func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// FindExample matches a label loosely: "real", "Real News" and "fake" all work.
func FindExample(label string) (Example, bool) {
	want := strings.ToLower(strings.TrimSpace(label))
	if want == "" {
		return Example{}, false
	}
	for _, ex := range examples {
		l := strings.ToLower(ex.Label)
		if l == want || strings.HasPrefix(l, want) {
			return ex, true
		}
	}
	return Example{}, false
}
