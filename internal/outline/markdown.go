package outline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// FromMarkdown converts a markdown document into outline nodes.
// Headings map to heading levels 1–4, list items to bullets, images to
// image nodes and every other block to paragraphs. Inline emphasis and raw
// HTML are written back in their source form so ParseInline can style them.
func FromMarkdown(src []byte) []Node {
	doc := markdown.Parser().Parse(text.NewReader(src))
	w := &mdWalker{src: src}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n)
	}
	return w.nodes
}

type mdWalker struct {
	src   []byte
	nodes []Node
}

func (w *mdWalker) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		level := n.Level
		if level > 4 {
			level = 4
		}
		w.emit(Node{Kind: KindHeading, Text: w.inline(n), Level: level})
	case *ast.Paragraph, *ast.TextBlock:
		if t := strings.TrimSpace(w.inline(n)); t != "" {
			w.emit(Node{Kind: KindPara, Text: t})
		}
		w.images(n)
	case *ast.List:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			w.listItem(item)
		}
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			w.emit(Node{Kind: KindPara, Text: strings.TrimRight(string(seg.Value(w.src)), "\n")})
		}
	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if t := strings.TrimSpace(string(seg.Value(w.src))); t != "" {
				w.emit(Node{Kind: KindPara, Text: t})
			}
		}
	}
}

func (w *mdWalker) listItem(item ast.Node) {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.List:
			w.block(c)
		case *ast.Paragraph, *ast.TextBlock:
			if t := strings.TrimSpace(w.inline(c)); t != "" {
				w.emit(Node{Kind: KindBullet, Text: t, Level: 5})
			}
			w.images(c)
		default:
			w.block(c)
		}
	}
}

// images emits an image node for every image inside a block, after the
// block's own text.
func (w *mdWalker) images(n ast.Node) {
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := c.(*ast.Image); ok && entering {
			w.emit(Node{Kind: KindImage, Text: string(img.Destination)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

func (w *mdWalker) inline(n ast.Node) string {
	var buf bytes.Buffer
	w.writeInline(&buf, n)
	return buf.String()
}

func (w *mdWalker) writeInline(buf *bytes.Buffer, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(w.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		case *ast.Emphasis:
			mark := "*"
			if c.Level >= 2 {
				mark = "**"
			}
			buf.WriteString(mark)
			w.writeInline(buf, c)
			buf.WriteString(mark)
		case *ast.CodeSpan:
			w.writeInline(buf, c)
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				buf.Write(seg.Value(w.src))
			}
		case *ast.AutoLink:
			buf.Write(c.URL(w.src))
		case *ast.Image:
			// emitted separately by images()
		default:
			w.writeInline(buf, c)
		}
	}
}

func (w *mdWalker) emit(n Node) {
	w.nodes = append(w.nodes, n)
}
