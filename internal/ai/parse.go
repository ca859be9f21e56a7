package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aryandumale04/SmartPrep/internal/airesponse"
)

var titleRe = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type rawQA struct {
	Question string          `json:"question"`
	Answer   json.RawMessage `json:"answer"`
}

// ParseQuestions extracts question/answer pairs from model output. It accepts
// fenced output, prose around the array, and objects wrapping the array under
// any key. Answers are normalized to Markdown. Items without a question are
// dropped.
func ParseQuestions(raw string) ([]QA, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, ErrEmptyOutput
	}

	items, ok := decodeItems(text)
	if !ok {
		if span, found := arraySpan(text); found {
			items, ok = decodeItems(span)
		}
	}
	if !ok {
		items, ok = decodeWrapped(text)
	}
	if !ok {
		return nil, ErrNoQuestions
	}

	out := make([]QA, 0, len(items))
	for _, it := range items {
		q := strings.TrimSpace(it.Question)
		if q == "" {
			continue
		}
		out = append(out, QA{
			Question: q,
			Answer:   airesponse.Normalize(airesponse.FromJSON(it.Answer)),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

func decodeItems(s string) ([]rawQA, bool) {
	var items []rawQA
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

// decodeWrapped handles {"questions": [...]} and similar single-array objects.
func decodeWrapped(s string) ([]rawQA, bool) {
	var obj airesponse.Object
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	for _, f := range obj.Fields() {
		if _, isArr := f.Value.([]any); !isArr {
			continue
		}
		b, err := json.Marshal(f.Value)
		if err != nil {
			continue
		}
		if items, ok := decodeItems(string(b)); ok {
			return items, true
		}
	}
	return nil, false
}

// arraySpan returns the text from the first '[' to the last ']'.
func arraySpan(s string) (string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseExplanation turns concept output into a title and Markdown body. It
// never fails; a body that cannot be recovered comes back empty. Fences are
// only removed around a JSON object; plain Markdown is normalized as received.
func ParseExplanation(raw string) Explanation {
	text := stripFences(raw)

	var title string
	var obj airesponse.Object
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		title, _ = obj.String("title")
	} else if m := titleRe.FindStringSubmatch(text); m != nil {
		var s string
		if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &s); err == nil {
			title = s
		} else {
			title = m[1]
		}
	}

	body := raw
	if isObjectText(text) {
		body = text
	}
	return Explanation{
		Title:       strings.TrimSpace(title),
		Explanation: airesponse.Normalize(airesponse.Text(body)),
	}
}

func isObjectText(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}
