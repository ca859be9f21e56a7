// Package render turns normalized Markdown into sanitized HTML for the web UI
// and into ANSI text for terminals.
package render

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const DefaultStyle = "github"

type options struct {
	style string
}

type Option func(*options)

// WithStyle selects the chroma style used by Stylesheet.
func WithStyle(name string) Option {
	return func(o *options) {
		if name != "" {
			o.style = name
		}
	}
}

// Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	code   *CodeRenderer
	policy *bluemonday.Policy
}

func New(opts ...Option) *Renderer {
	o := options{style: DefaultStyle}
	for _, opt := range opts {
		opt(&o)
	}

	code := NewCodeRenderer(o.style)
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{code: code}, 100)),
		),
	)
	return &Renderer{md: md, code: code, policy: newPolicy()}
}

// Render converts markdown to sanitized HTML. Raw HTML in the input is dropped.
func (r *Renderer) Render(markdown string) (template.HTML, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderCode exposes the code block subrenderer.
func (r *Renderer) RenderCode(code, language string) CodeBlock {
	return r.code.RenderCode(code, language)
}

func (r *Renderer) Stylesheet() (string, error) {
	return r.code.Stylesheet()
}

// ExtractCodeBlocks returns the fenced and indented code blocks of markdown in
// document order.
func (r *Renderer) ExtractCodeBlocks(markdown string) []CodeBlock {
	src := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := n.(type) {
		case *ast.FencedCodeBlock:
			blocks = append(blocks, r.code.RenderCode(codeText(c, src), string(c.Language(src))))
		case *ast.CodeBlock:
			blocks = append(blocks, r.code.RenderCode(codeText(c, src), ""))
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func codeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

// nodeRenderer overrides goldmark's HTML output for the node kinds that carry
// fixed classes. Kinds it does not register fall back to the defaults.
type nodeRenderer struct {
	code *CodeRenderer
}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)

	reg.Register(extast.KindTable, r.renderTable)
	reg.Register(extast.KindTableHeader, r.renderTableHeader)
	reg.Register(extast.KindTableRow, r.renderTableRow)
	reg.Register(extast.KindTableCell, r.renderTableCell)
}

func openTag(w util.BufWriter, tag, class string) {
	_ = w.WriteByte('<')
	_, _ = w.WriteString(tag)
	if class != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.WriteString(class)
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

func closeTag(w util.BufWriter, tag string) {
	_, _ = w.WriteString("</" + tag + ">\n")
}

func (r *nodeRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	tag := "h" + strconv.Itoa(n.Level)
	if entering {
		openTag(w, tag, headingClasses[n.Level])
	} else {
		closeTag(w, tag)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderParagraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		openTag(w, "p", paragraphClass)
	} else {
		closeTag(w, "p")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderList(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag, class := "ul", ulClass
	if n.IsOrdered() {
		tag, class = "ol", olClass
	}
	if !entering {
		closeTag(w, tag)
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<" + tag)
	if n.IsOrdered() && n.Start != 1 {
		_, _ = w.WriteString(` start="` + strconv.Itoa(n.Start) + `"`)
	}
	_, _ = w.WriteString(` class="` + class + "\">\n")
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderListItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		openTag(w, "li", listItemClass)
	} else {
		closeTag(w, "li")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderBlockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		openTag(w, "blockquote", blockquoteClass)
		_ = w.WriteByte('\n')
	} else {
		closeTag(w, "blockquote")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderThematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<hr class="` + hrClass + "\">\n")
	}
	return ast.WalkContinue, nil
}

func writeHref(w util.BufWriter, dest []byte) {
	_, _ = w.WriteString(`href="`)
	if !html.IsDangerousURL(dest) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(dest, true)))
	}
	_ = w.WriteByte('"')
}

func (r *nodeRenderer) renderLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<a ")
	writeHref(w, n.Destination)
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` class="` + linkClass + `">`)
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering {
		return ast.WalkContinue, nil
	}
	url := n.URL(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}
	_, _ = w.WriteString("<a ")
	writeHref(w, url)
	_, _ = w.WriteString(` class="` + linkClass + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_, _ = w.WriteString(`<img src="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(plainText(n, source)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(` class="` + imageClass + `">`)
	return ast.WalkSkipChildren, nil
}

// plainText concatenates the text beneath n, used for image alt text.
func plainText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.Write(plainText(c, source))
		}
	}
	return buf.Bytes()
}

func (r *nodeRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code>")
		return ast.WalkContinue, nil
	}
	openTag(w, "code", inlineCodeClass)
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			_, _ = w.Write(util.EscapeHTML(value[:len(value)-1]))
			_ = w.WriteByte(' ')
		} else {
			_, _ = w.Write(util.EscapeHTML(value))
		}
	}
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var language string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		language = string(fenced.Language(source))
	}
	block := r.code.RenderCode(codeText(node, source), language)
	_, _ = w.WriteString(string(block.HTML))
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderTable(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		openTag(w, "div", tableWrapClass)
		openTag(w, "table", tableClass)
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}
	if node.ChildCount() > 1 {
		closeTag(w, "tbody")
	}
	_, _ = w.WriteString("</table></div>\n")
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableHeader(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		openTag(w, "thead", theadClass)
		_, _ = w.WriteString("<tr>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</tr>\n</thead>\n")
	if node.NextSibling() != nil {
		openTag(w, "tbody", tbodyClass)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableRow(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<tr>\n")
	} else {
		closeTag(w, "tr")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*extast.TableCell)
	tag, class := "td", tdClass
	if node.Parent() != nil && node.Parent().Kind() == extast.KindTableHeader {
		tag, class = "th", thClass
	}
	if !entering {
		closeTag(w, tag)
		return ast.WalkContinue, nil
	}
	switch n.Alignment {
	case extast.AlignCenter:
		class += " text-center"
	case extast.AlignRight:
		class += " text-right"
	}
	openTag(w, tag, class)
	return ast.WalkContinue, nil
}
