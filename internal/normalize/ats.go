package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const defaultFeedback = "No feedback provided."

// Analysis is the normalized ATS result. It is derived on demand and never
// persisted.
type Analysis struct {
	Score           int      `json:"score"`
	Feedback        string   `json:"feedback"`
	MissingKeywords []string `json:"missingKeywords"`
}

// ATS extracts an Analysis from raw model output. Models tend to wrap the
// JSON object in prose, so the substring between the first '{' and the last
// '}' is parsed. Each field has an explicit default: score 0 when missing or
// non-numeric, a placeholder feedback string, an empty keyword list. A longer
// missingKeywords list is passed through untruncated; the five-item cap is
// the model's job. Total parse failure yields a zero-score result carrying
// the error message as feedback instead of an error.
func ATS(raw string) Analysis {
	content := raw
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Analysis{
			Score:           0,
			Feedback:        "Analysis failed: " + err.Error(),
			MissingKeywords: []string{},
		}
	}

	out := Analysis{
		Score:           coerceScore(parsed["score"]),
		Feedback:        defaultFeedback,
		MissingKeywords: []string{},
	}
	if feedback, ok := parsed["feedback"].(string); ok && feedback != "" {
		out.Feedback = feedback
	}
	if arr, ok := parsed["missingKeywords"].([]any); ok {
		out.MissingKeywords = stringSlice(arr)
	}
	return out
}

func coerceScore(value any) int {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(math.Round(v))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(parsed))
	default:
		return 0
	}
}
