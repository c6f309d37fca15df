// Package render turns raw page HTML into the markdown-like text dump the
// parsing pipeline consumes. Readability distills the page to its main
// content first, then a DOM walk emits one structural element per line:
// headings as "# ...", anchors as "[text](url)", everything else as plain
// text. Images are dropped.
package render

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var (
	imageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
)

// Rendered is the text dump plus the page metadata readability recovered.
type Rendered struct {
	Markdown string
	Title    string
	SiteName string
}

// Page distills and renders one page.
func Page(rawURL, htmlSrc string) (Rendered, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Rendered{}, fmt.Errorf("parse url: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(htmlSrc), parsedURL)
	if err != nil {
		return Rendered{}, fmt.Errorf("distill page: %w", err)
	}

	md, err := Fragment(article.Content)
	if err != nil {
		return Rendered{}, err
	}

	return Rendered{
		Markdown: md,
		Title:    strings.TrimSpace(article.Title),
		SiteName: strings.TrimSpace(article.SiteName),
	}, nil
}

// Fragment renders an HTML fragment without the readability pass.
func Fragment(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}
	var b strings.Builder
	for _, n := range doc.Nodes {
		renderNode(&b, n)
	}
	return Normalize(b.String()), nil
}

// Normalize strips leftover image markdown, collapses runs of blank lines to
// one, and trims per-line whitespace. It is exposed separately so externally
// rendered markdown can be cleaned the same way.
func Normalize(md string) string {
	md = imageRe.ReplaceAllString(md, "")
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
	}
	md = strings.Join(lines, "\n")
	md = blankRunRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md) + "\n"
}

var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"img":      true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
}

var headingLevels = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

func renderNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
		if level, ok := headingLevels[n.Data]; ok {
			b.WriteString("\n" + strings.Repeat("#", level) + " " + inlineText(n) + "\n\n")
			return
		}
		switch n.Data {
		case "a":
			renderAnchor(b, n)
			return
		case "br":
			b.WriteString("\n")
			return
		case "li":
			b.WriteString("\n* ")
		case "p", "div", "section", "article", "ul", "ol", "tr", "table", "footer", "header", "nav":
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "section", "article", "ul", "ol", "footer", "header", "nav":
			b.WriteString("\n")
		case "li", "tr", "td", "th":
			b.WriteString("\n")
		}
	}
}

// renderAnchor emits "[text](href)". Anchors wrapping block content keep
// their inner lines and spread over multiple lines, with "[" and "](href)"
// on their own lines.
func renderAnchor(b *strings.Builder, n *html.Node) {
	href := attr(n, "href")
	if href == "" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(b, c)
		}
		return
	}

	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(&inner, c)
	}
	text := strings.TrimSpace(inner.String())

	if strings.Contains(text, "\n") {
		b.WriteString("\n[\n" + text + "\n](" + href + ")\n")
		return
	}
	b.WriteString("\n[" + text + "](" + href + ")\n")
}

func inlineText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(b.String(), " "))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
