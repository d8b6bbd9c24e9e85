package promptsynth

import "strings"

// Section markers emitted by marker templates.
const (
	PositiveMarker = "Prompt:"
	NegativeMarker = "Negative Prompt:"
)

// Fields is the typed result of splitting a model answer.
type Fields struct {
	// Text is set for SingleText templates.
	Text string
	// Positive and Negative are set for PositiveNegativePair templates.
	Positive string
	Negative string
	// Fallback reports that the negative prompt came from the template
	// rather than from the answer.
	Fallback bool
}

// Parse splits raw according to t. It never fails: when the expected
// markers are missing the whole answer becomes the positive prompt and the
// template's fallback the negative one.
func Parse(raw string, t Template) Fields {
	if t.Shape == SingleText {
		return Fields{Text: strings.TrimSpace(raw)}
	}
	if t.Markers {
		if pos, neg, ok := splitMarkers(raw); ok {
			return Fields{Positive: pos, Negative: neg}
		}
	}
	return Fields{
		Positive: strings.TrimSpace(raw),
		Negative: t.FallbackNegative,
		Fallback: true,
	}
}

// splitMarkers splits at the first NegativeMarker. The PositiveMarker must
// appear before it; the one inside NegativeMarker does not count.
func splitMarkers(raw string) (string, string, bool) {
	before, after, found := strings.Cut(raw, NegativeMarker)
	if !found {
		return "", "", false
	}
	i := strings.Index(before, PositiveMarker)
	if i < 0 {
		return "", "", false
	}
	positive := before[:i] + before[i+len(PositiveMarker):]
	return strings.TrimSpace(positive), strings.TrimSpace(after), true
}
