package airesponse

import (
	"regexp"
	"strings"
)

// Strategy is one recovery rule. Apply reports whether it produced the result.
type Strategy struct {
	Name  string
	Apply func(Response) (string, bool)
}

// Chain evaluates strategies in order; the first match wins.
type Chain []Strategy

// DefaultChain is the normalization order used by Normalize.
var DefaultChain = Chain{
	{Name: "empty", Apply: emptyContent},
	{Name: "explanation-field", Apply: explanationField},
	{Name: "object-sections", Apply: objectSections},
	{Name: "strict-explanation", Apply: strictExplanation},
	{Name: "regex-explanation", Apply: regexExplanation},
	{Name: "strict-object", Apply: strictObject},
	{Name: "trailing-markdown", Apply: trailingMarkdown},
	{Name: "passthrough", Apply: passthrough},
}

// Normalize returns Markdown for r using DefaultChain.
func Normalize(r Response) string {
	out, _ := DefaultChain.Match(r)
	return out
}

// Normalize returns the output of the first matching strategy, or "" when
// none matches.
func (c Chain) Normalize(r Response) string {
	out, _ := c.Match(r)
	return out
}

// Match is Normalize that also names the strategy that fired ("" if none).
func (c Chain) Match(r Response) (string, string) {
	for _, s := range c {
		if out, ok := s.Apply(r); ok {
			return out, s.Name
		}
	}
	return "", ""
}

const explanationKey = "explanation"

var (
	explanationRe     = regexp.MustCompile(`(?s)"explanation"\s*:\s*"((?:[^"\\]|\\.)*)"\s*[,}]`)
	explanationEscape = strings.NewReplacer(`\n`, "\n", `\"`, `"`, `\t`, "\t")
)

func emptyContent(r Response) (string, bool) {
	if r.Kind() == KindEmpty {
		return "", true
	}
	if s, ok := r.Text(); ok && s == "" {
		return "", true
	}
	return "", false
}

func explanationField(r Response) (string, bool) {
	obj, ok := r.Object()
	if !ok {
		return "", false
	}
	return obj.String(explanationKey)
}

func objectSections(r Response) (string, bool) {
	obj, ok := r.Object()
	if !ok {
		return "", false
	}
	return sectionsMarkdown(obj), true
}

// looksLikeObject reports whether trimmed text is wrapped in braces.
func looksLikeObject(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

func trimmedText(r Response) (string, bool) {
	s, ok := r.Text()
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func strictExplanation(r Response) (string, bool) {
	s, ok := trimmedText(r)
	if !ok || !strings.Contains(s, `"`+explanationKey+`"`) || !looksLikeObject(s) {
		return "", false
	}
	obj, err := parseObject([]byte(s))
	if err != nil {
		return "", false
	}
	return obj.String(explanationKey)
}

func regexExplanation(r Response) (string, bool) {
	s, ok := trimmedText(r)
	if !ok || !strings.Contains(s, `"`+explanationKey+`"`) {
		return "", false
	}
	m := explanationRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(explanationEscape.Replace(m[1])), true
}

func strictObject(r Response) (string, bool) {
	s, ok := trimmedText(r)
	if !ok || !looksLikeObject(s) {
		return "", false
	}
	obj, err := parseObject([]byte(s))
	if err != nil {
		return "", false
	}
	if out, ok := obj.String(explanationKey); ok {
		return out, true
	}
	return sectionsMarkdown(obj), true
}

// trailingMarkdown handles a JSON header followed by free Markdown.
func trailingMarkdown(r Response) (string, bool) {
	s, ok := trimmedText(r)
	if !ok || !strings.HasPrefix(s, "{") {
		return "", false
	}
	i := strings.Index(s, "}\n")
	if i < 0 {
		return "", false
	}
	rest := s[i+2:]
	if strings.TrimSpace(rest) == "" {
		return "", false
	}
	return rest, true
}

func passthrough(r Response) (string, bool) {
	return r.Text()
}

// sectionsMarkdown emits "## key" followed by the value for every key, in
// order, separated by blank lines. Containers become ```json blocks.
func sectionsMarkdown(obj *Object) string {
	sections := make([]string, 0, obj.Len())
	for _, f := range obj.Fields() {
		sections = append(sections, "## "+f.Key+"\n\n"+valueMarkdown(f.Value))
	}
	return strings.Join(sections, "\n\n")
}

func valueMarkdown(v any) string {
	switch v.(type) {
	case *Object, []any:
		js, err := prettyJSON(v)
		if err != nil {
			return ""
		}
		return "```json\n" + js + "\n```"
	default:
		return scalarString(v)
	}
}
