package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeLabel is shown when a block has no recognised language.
const DefaultCodeLabel = "Code"

// CodeBlock is one rendered fenced block.
type CodeBlock struct {
	// Language is the fence info string as written, possibly empty.
	Language string
	// Label is the lexer's display name, or DefaultCodeLabel.
	Label string
	// Code is the block content with one trailing newline removed; this is
	// what the copy control puts on the clipboard.
	Code string
	HTML template.HTML
}

// CodeRenderer highlights code with chroma using CSS classes, so the same
// markup works with any stylesheet produced by Stylesheet.
type CodeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func NewCodeRenderer(styleName string) *CodeRenderer {
	return &CodeRenderer{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// RenderCode builds the header bar, copy control and highlighted body for
// code. Unknown or empty languages fall back to plain text.
func (c *CodeRenderer) RenderCode(code, language string) CodeBlock {
	code = strings.TrimSuffix(code, "\n")
	language = strings.TrimSpace(language)

	label := DefaultCodeLabel
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer != nil {
		label = lexer.Config().Name
	} else {
		lexer = lexers.Fallback
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + codeBlockClass + `">`)
	sb.WriteString(`<div class="` + codeHeaderClass + `">`)
	sb.WriteString(`<span class="` + codeLabelClass + `">` + html.EscapeString(label) + `</span>`)
	sb.WriteString(`<button type="button" class="` + copyButtonClass + `" aria-label="Copy code" data-copy="` +
		html.EscapeString(code) + `">Copy</button>`)
	sb.WriteString(`</div>`)
	sb.WriteString(c.highlight(lexer, code))
	sb.WriteString(`</div>`)

	return CodeBlock{
		Language: language,
		Label:    label,
		Code:     code,
		HTML:     template.HTML(sb.String()),
	}
}

func (c *CodeRenderer) highlight(lexer chroma.Lexer, code string) string {
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err == nil {
		var buf bytes.Buffer
		if err = c.formatter.Format(&buf, c.style, it); err == nil {
			return buf.String()
		}
	}
	return `<pre class="chroma"><code>` + html.EscapeString(code) + `</code></pre>`
}

// Stylesheet returns the CSS for the configured highlighting style.
func (c *CodeRenderer) Stylesheet() (string, error) {
	var buf bytes.Buffer
	if err := c.formatter.WriteCSS(&buf, c.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}
