package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/coda"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	minWrapWidth = 10
	maxRuleWidth = 40
	quotePrefix  = "│ "
	codeGutter   = "┆ "
)

type styles struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	heading   lipgloss.Style
	code      lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newStyles(lr *lipgloss.Renderer, theme coda.Theme) styles {
	return styles{
		bold:      lr.NewStyle().Bold(true),
		italic:    lr.NewStyle().Italic(true),
		heading:   lr.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		code:      lr.NewStyle().Foreground(ansiColor(theme.Accent)),
		muted:     lr.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lr.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *Renderer) render(source []byte, width int) string {
	doc := r.parser.Parse(text.NewReader(source))

	var buf bytes.Buffer
	r.walkBlock(doc, source, width, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (r *Renderer) walkBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, width, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

// wrap word-wraps s to width and terminates it with a newline.
func (r *Renderer) wrap(s string, width int) string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	return r.lr.NewStyle().Width(width).Render(s) + "\n"
}

func (r *Renderer) renderBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		buf.WriteString(r.wrap(r.collectInline(n, source), width))

	case *ast.Heading:
		r.renderHeading(n, source, width, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.styles.muted.Render(lang))
			buf.WriteString("\n")
		}
		r.renderCode(n, source, buf)

	case *ast.CodeBlock:
		r.renderCode(n, source, buf)

	case *ast.Blockquote:
		var inner bytes.Buffer
		r.walkBlock(n, source, width-runewidth.StringWidth(quotePrefix), &inner)
		prefix := r.styles.muted.Render(quotePrefix)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			buf.WriteString(prefix + line + "\n")
		}

	case *ast.List:
		r.renderList(n, source, width, buf, 0)

	case *ast.ThematicBreak:
		buf.WriteString(r.styles.muted.Render(strings.Repeat("─", min(width, maxRuleWidth))))
		buf.WriteString("\n")

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}

	default:
		r.walkBlock(node, source, width, buf)
	}
}

// renderHeading styles a heading with its level marker. Top-level headings
// are underlined with a rule as wide as the text.
func (r *Renderer) renderHeading(n *ast.Heading, source []byte, width int, buf *bytes.Buffer) {
	inline := r.collectInline(n, source)
	marker := strings.Repeat("#", n.Level) + " "
	buf.WriteString(r.wrap(r.styles.heading.Render(marker+inline), width))
	if n.Level == 1 {
		rule := min(lipgloss.Width(marker+inline), width)
		buf.WriteString(r.styles.muted.Render(strings.Repeat("═", rule)))
		buf.WriteString("\n")
	}
}

type linesNode interface {
	Lines() *text.Segments
}

func (r *Renderer) renderCode(n linesNode, source []byte, buf *bytes.Buffer) {
	gutter := r.styles.muted.Render(codeGutter)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		content := strings.TrimRight(string(line.Value(source)), "\n")
		buf.WriteString(gutter + r.styles.code.Render(content) + "\n")
	}
}

func (r *Renderer) renderList(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	n := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		marker := "• "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", n)
			n++
		}

		var content bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if content.Len() > 0 {
					content.WriteString("\n")
				}
				content.WriteString(r.collectInline(in, source))
			case *ast.List:
				if content.Len() > 0 {
					r.writeListItem(buf, indent+marker, content.String(), width)
					content.Reset()
				}
				r.renderList(in, source, width, buf, depth+1)
				// Later paragraphs of the same item align with its text.
				marker = strings.Repeat(" ", runewidth.StringWidth(marker))
			default:
				r.renderBlock(ic, source, width, &content)
			}
		}
		if content.Len() > 0 {
			r.writeListItem(buf, indent+marker, content.String(), width)
		}
	}
}

// writeListItem writes an item whose continuation lines are indented to
// align with the first line's text.
func (r *Renderer) writeListItem(buf *bytes.Buffer, prefix, content string, width int) {
	pad := runewidth.StringWidth(prefix)
	wrapped := strings.TrimRight(r.wrap(content, width-pad), "\n")
	continuation := strings.Repeat(" ", pad)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
			continue
		}
		buf.WriteString(continuation + line + "\n")
	}
}

// collectInline returns the styled text of a node's inline children.
func (r *Renderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *Renderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.collectInline(n, source)
		if n.Level == 1 {
			buf.WriteString(r.styles.italic.Render(inner))
		} else {
			buf.WriteString(r.styles.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.styles.code.Render(r.collectInline(n, source)))

	case *ast.Link:
		r.writeLink(buf, r.collectInline(n, source), string(n.Destination))

	case *ast.Image:
		r.writeLink(buf, r.collectInline(n, source), string(n.Destination))

	case *ast.AutoLink:
		buf.WriteString(r.styles.underline.Render(string(n.URL(source))))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}

func (r *Renderer) writeLink(buf *bytes.Buffer, label, url string) {
	if label == "" || label == url {
		buf.WriteString(r.styles.underline.Render(url))
		return
	}
	buf.WriteString(r.styles.underline.Render(label))
	buf.WriteString(" ")
	buf.WriteString(r.styles.muted.Render("(" + url + ")"))
}
