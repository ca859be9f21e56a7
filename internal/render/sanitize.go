package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// newPolicy extends the UGC policy with what the renderer itself emits:
// classes, the copy button and task-list checkboxes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	p.AllowElements("pre", "code", "del", "button", "input")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^(button|checkbox)$`)).OnElements("button", "input")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("aria-label").OnElements("button")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}
